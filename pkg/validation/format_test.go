package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Invalid format",
			format:    "json",
			expectErr: true,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Case sensitive - mixed case",
			format:    "Pretty",
			expectErr: true,
		},
		{
			name:      "Case sensitive - CSV uppercase",
			format:    "CSV",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
		{
			name:      "Similar but incorrect format",
			format:    "prettyprint",
			expectErr: true,
		},
		{
			name:      "XML format not supported",
			format:    "xml",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)

			if tt.expectErr {
				if err == nil {
					t.Errorf("ValidateOutputFormat(%s) expected error but got none", tt.format)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateOutputFormat(%s) unexpected error = %v", tt.format, err)
				}
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	// Test that error messages are informative
	invalidFormats := []string{"json", "xml", "yaml", ""}

	for _, format := range invalidFormats {
		err := ValidateOutputFormat(format)
		if err == nil {
			t.Errorf("Expected error for format '%s'", format)
			continue
		}

		// Check that error message contains the invalid format
		errorMsg := err.Error()
		if format != "" && errorMsg != "" {
			// For non-empty formats, the error should mention the format
			// This is a basic check - the actual error message format may vary
			if len(errorMsg) < 10 { // Ensure we have a meaningful error message
				t.Errorf("Error message too short for format '%s': %s", format, errorMsg)
			}
		}
	}
}

func TestValidatePaginationCounts(t *testing.T) {
	tests := []struct {
		name          string
		siblingCount  int
		boundaryCount int
		expectErr     bool
	}{
		{"Defaults", 1, 1, false},
		{"Zero counts", 0, 0, false},
		{"Negative siblings", -1, 1, true},
		{"Negative boundaries", 1, -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaginationCounts(tt.siblingCount, tt.boundaryCount)
			if tt.expectErr && err == nil {
				t.Errorf("ValidatePaginationCounts(%d, %d) expected error but got none", tt.siblingCount, tt.boundaryCount)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidatePaginationCounts(%d, %d) unexpected error = %v", tt.siblingCount, tt.boundaryCount, err)
			}
		})
	}
}

func TestValidateTermMonths(t *testing.T) {
	tests := []struct {
		name       string
		termMonths int
		expectErr  bool
	}{
		{"Typical", 36, false},
		{"Zero", 0, false},
		{"Negative", -12, false},
		{"At limit", 600, false},
		{"Over limit", 601, true},
		{"Millions", 3000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTermMonths(tt.termMonths)
			if tt.expectErr != (err != nil) {
				t.Errorf("ValidateTermMonths(%d) error = %v, expectErr %v", tt.termMonths, err, tt.expectErr)
			}
		})
	}
}

func TestValidateTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalPages int
		expectErr  bool
	}{
		{"Typical", 10, false},
		{"Negative", -1, false},
		{"At limit", 10000, false},
		{"Over limit", 10001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTotalPages(tt.totalPages)
			if tt.expectErr != (err != nil) {
				t.Errorf("ValidateTotalPages(%d) error = %v, expectErr %v", tt.totalPages, err, tt.expectErr)
			}
		})
	}
}
