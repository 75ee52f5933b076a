package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/financing-schedule/internal/config"
	"github.com/iwvelando/financing-schedule/internal/quote"
	"github.com/iwvelando/financing-schedule/internal/ratesource"
	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/output"
	"github.com/iwvelando/financing-schedule/pkg/pagination"
	"github.com/iwvelando/financing-schedule/pkg/principal"
	"github.com/iwvelando/financing-schedule/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	source        ratesource.Source
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the financing API. The
// source resolves rate keys for every request; uploaded configurations may
// add their own rates in front of it.
func NewHandler(logger *zap.Logger, source ratesource.Source, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if source == nil {
		source = ratesource.NewStatic(nil)
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, source: source, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single schedule from a JSON request
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// All quotes of an uploaded configuration file
	mux.HandleFunc("/api/quotes", h.handleQuotes)

	// Page control window for list screens
	mux.HandleFunc("/api/pagination", h.handlePagination)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type scheduleRequest struct {
	Name             string                `json:"name"`
	Client           string                `json:"client"`
	Principal        *float64              `json:"principal"`
	Components       *principal.Components `json:"components"`
	RateKey          string                `json:"rateKey"`
	Rate             *config.InlineRate    `json:"rate"`
	TermMonths       int                   `json:"termMonths"`
	MonthlyInsurance float64               `json:"monthlyInsurance"`
	StartDate        string                `json:"startDate"`
}

// toQuote maps the request onto a quote. A bare principal is treated as the
// price with no other components.
func (r scheduleRequest) toQuote() (config.Quote, error) {
	if r.Principal != nil && r.Components != nil {
		return config.Quote{}, errors.New("principal and components are mutually exclusive")
	}

	q := config.Quote{
		Name:             r.Name,
		Client:           r.Client,
		StartDate:        r.StartDate,
		RateKey:          r.RateKey,
		Rate:             r.Rate,
		TermMonths:       r.TermMonths,
		MonthlyInsurance: r.MonthlyInsurance,
	}
	if q.Name == "" {
		q.Name = "schedule"
	}
	switch {
	case r.Components != nil:
		q.Components = *r.Components
	case r.Principal != nil:
		q.Components = principal.Components{Price: *r.Principal}
	}
	return q, nil
}

type scheduleResponse struct {
	Quote    quote.Result `json:"quote"`
	CSV      string       `json:"csv"`
	Duration string       `json:"duration"`
}

type quotesResponse struct {
	Quotes     []quote.Result         `json:"quotes"`
	Pages      []quotePages           `json:"pages"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

// quotePages is the first page control of a quote's schedule listing.
type quotePages struct {
	Name       string            `json:"name"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	Items      []pagination.Item `json:"items"`
}

type paginationResponse struct {
	Request pagination.Request `json:"request"`
	Items   []pagination.Item  `json:"items"`
	Pages   []int              `json:"pages"`
	Text    string             `json:"text"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode schedule request: %v", err), op)
		return
	}

	q, err := req.toQuote()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := quote.NewEvaluator(h.logger, h.source).Evaluate(r.Context(), q)
	if err != nil {
		h.respondErrorWithOp(w, statusForEvaluation(err), err.Error(), op)
		return
	}

	csv, err := output.CsvString([]quote.Result{result})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.String("quote", result.Name),
		zap.Int("periods", len(result.Schedule.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Quote:    result,
		CSV:      csv,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleQuotes(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleQuotes"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	// Uploaded rates shadow the server's; redis settings in uploads are ignored.
	table, err := cfg.RateTable()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	source := ratesource.Chain{ratesource.NewStatic(table), h.source}

	results, err := quote.NewEvaluator(h.logger, source).EvaluateAll(r.Context(), cfg.Quotes)
	if err != nil {
		h.respondErrorWithOp(w, statusForEvaluation(err), err.Error(), op)
		return
	}

	csv, err := output.CsvString(results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("quotes computed",
		zap.String("op", op),
		zap.Int("quotes", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, quotesResponse{
		Quotes:     results,
		Pages:      buildPages(results, cfg.Pagination),
		CSV:        csv,
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	})
}

func (h *handler) handlePagination(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePagination"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	totalPages, err := queryInt(query.Get("totalPages"), -1)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid totalPages: %v", err), op)
		return
	}
	if totalPages < 0 {
		rows, rowsErr := queryInt(query.Get("rows"), -1)
		pageSize, sizeErr := queryInt(query.Get("pageSize"), constants.DefaultPageSize)
		if rowsErr != nil || sizeErr != nil || rows < 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, "totalPages or rows is required", op)
			return
		}
		totalPages = pagination.TotalPages(rows, min(pageSize, constants.MaxPageSize))
	}
	if err := validation.ValidateTotalPages(totalPages); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	page, err := queryInt(query.Get("page"), 1)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid page: %v", err), op)
		return
	}
	siblings, err := queryInt(query.Get("siblings"), constants.DefaultSiblingCount)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid siblings: %v", err), op)
		return
	}
	boundaries, err := queryInt(query.Get("boundaries"), constants.DefaultBoundaryCount)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid boundaries: %v", err), op)
		return
	}
	if err := validation.ValidatePaginationCounts(siblings, boundaries); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	req := pagination.Request{
		CurrentPage:   pagination.Clamp(page, totalPages),
		TotalPages:    totalPages,
		SiblingCount:  siblings,
		BoundaryCount: boundaries,
	}
	items := req.Items()

	h.writeJSON(w, http.StatusOK, paginationResponse{
		Request: req,
		Items:   items,
		Pages:   pagination.Pages(items),
		Text:    itemsText(items),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func buildPages(results []quote.Result, conf config.PaginationConfig) []quotePages {
	pages := make([]quotePages, 0, len(results))
	for _, result := range results {
		totalPages := pagination.TotalPages(len(result.Schedule.Rows), conf.PageSize)
		req := pagination.NewRequest(1, totalPages)
		if conf.SiblingCount != nil {
			req.SiblingCount = *conf.SiblingCount
		}
		if conf.BoundaryCount != nil {
			req.BoundaryCount = *conf.BoundaryCount
		}
		pages = append(pages, quotePages{
			Name:       result.Name,
			PageSize:   conf.PageSize,
			TotalPages: totalPages,
			Items:      req.Items(),
		})
	}
	return pages
}

// statusForEvaluation maps an evaluation error onto an HTTP status.
func statusForEvaluation(err error) int {
	switch {
	case errors.Is(err, ratesource.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ratesource.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func queryInt(raw string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	return strconv.Atoi(trimmed)
}

func itemsText(items []pagination.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, " ")
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("financing request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes before writing the header so an unencodable payload
// still yields a well-formed 500 instead of a truncated body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Int("status", status), zap.Error(err))
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
