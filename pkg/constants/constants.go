// Package constants provides shared constants for the financing-schedule application.
package constants

// DateTimeLayout is the format expected in config files for quote start dates
// and is also the output format for installment due dates.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places kept for composed amounts
	CurrencyPlaces = 2

	// BalanceDustThreshold is the closing balance below which a non-final
	// period is reported as fully paid.
	BalanceDustThreshold = 1.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxTermMonths is the longest term a quote may request (50 years)
	MaxTermMonths = 600
)

// Pagination defaults
const (
	// DefaultSiblingCount is how many pages are shown on each side of the current page
	DefaultSiblingCount = 1

	// DefaultBoundaryCount is how many pages are pinned at each end of the control
	DefaultBoundaryCount = 1

	// DefaultPageSize is the number of records shown per page by list screens
	DefaultPageSize = 10

	// MaxPageSize caps page sizes requested over the API
	MaxPageSize = 100

	// MaxTotalPages caps the page count a pagination request may describe
	MaxTotalPages = 10000
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is loaded before configuration when present
	DefaultEnvFile = ".env"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRedisKeyPrefix namespaces financing rate hashes in Redis
	DefaultRedisKeyPrefix = "financing:rate:"
)
