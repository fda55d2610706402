package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fazil-api/prayer-times-service/internal/calibration"
	"github.com/fazil-api/prayer-times-service/internal/lifecycle"
	"github.com/fazil-api/prayer-times-service/internal/models"
	"github.com/fazil-api/prayer-times-service/internal/service"
	"github.com/fazil-api/prayer-times-service/internal/validation"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	prayerService *service.PrayerService
	table         *calibration.Table
	logger        *zap.Logger
	startTime     time.Time
}

// NewHandler returns a new Handler.
func NewHandler(prayerService *service.PrayerService, table *calibration.Table, logger *zap.Logger) *Handler {
	return &Handler{
		prayerService: prayerService,
		table:         table,
		logger:        logger,
		startTime:     time.Now(),
	}
}

// GetDailyTimes handles GET /api/v1/times/daily.
// Query: lat, lon (required); date (YYYY-MM-DD, default UTC today);
// tz (hours, default round(lon/15)); country (default calibration when
// absent or unknown); city (optional).
func (h *Handler) GetDailyTimes(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.parseLocation(w, r)
	if !ok {
		return
	}

	date := models.DateOf(time.Now().UTC())
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := models.ParseDate(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	tz, ok := h.parseTimezone(w, r, loc.Longitude)
	if !ok {
		return
	}

	country := r.URL.Query().Get("country")
	city := r.URL.Query().Get("city")

	result, err := h.prayerService.DailyTimes(r.Context(), loc, date, tz, country, city)
	if err != nil {
		writeComputeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetMonthlyTimes handles GET /api/v1/times/monthly.
// Query: lat, lon, year, month (required); tz, country, city as for daily.
func (h *Handler) GetMonthlyTimes(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.parseLocation(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(w, r, http.StatusBadRequest, "INVALID_DATE", "year is required and must be a four digit year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, r, http.StatusBadRequest, "INVALID_DATE", "month is required and must be 1-12")
		return
	}

	tz, ok := h.parseTimezone(w, r, loc.Longitude)
	if !ok {
		return
	}

	country := r.URL.Query().Get("country")
	city := r.URL.Query().Get("city")

	result, err := h.prayerService.MonthlyTimes(r.Context(), loc, year, time.Month(month), tz, country, city)
	if err != nil {
		writeComputeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetQibla handles GET /api/v1/qibla. Query: lat, lon (required).
func (h *Handler) GetQibla(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.parseLocation(w, r)
	if !ok {
		return
	}
	bearing, err := h.prayerService.Qibla(r.Context(), loc)
	if err != nil {
		writeComputeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"location":     loc,
		"qiblaDegrees": bearing,
		"kaabaLocation": models.Location{
			Latitude:  21.4225,
			Longitude: 39.8262,
		},
	})
}

// GetCountries handles GET /api/v1/countries: the supported calibrations
// with verification status, including data-discrepancy notes.
func (h *Handler) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries := h.table.Countries()
	writeJSON(w, http.StatusOK, map[string]any{
		"countries":      countries,
		"total":          len(countries),
		"defaultCountry": h.table.DefaultID(),
	})
}

// GetCacheStats handles GET /api/v1/cache/stats.
func (h *Handler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.prayerService.CacheStats())
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK
	if lifecycle.IsShuttingDown() {
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, map[string]any{
		"status":        status,
		"service":       "prayer-times-service",
		"uptimeSeconds": time.Since(h.startTime).Seconds(),
		"cache":         h.prayerService.CacheStats(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// parseLocation reads and validates lat/lon query parameters, writing a 400
// response and returning ok=false on failure.
func (h *Handler) parseLocation(w http.ResponseWriter, r *http.Request) (models.Location, bool) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(r.URL.Query().Get("lat")), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(r.URL.Query().Get("lon")), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_COORDINATE", "lat and lon are required numeric parameters")
		return models.Location{}, false
	}
	if err := validation.ValidateCoordinates(lat, lon); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_COORDINATE", err.Error())
		return models.Location{}, false
	}
	return models.Location{Latitude: lat, Longitude: lon}, true
}

// parseTimezone reads the optional tz parameter, defaulting to the
// longitude-derived estimate the way the upstream authority's app does.
func (h *Handler) parseTimezone(w http.ResponseWriter, r *http.Request, longitude float64) (float64, bool) {
	s := strings.TrimSpace(r.URL.Query().Get("tz"))
	if s == "" {
		return math.Round(longitude / 15.0), true
	}
	tz, err := strconv.ParseFloat(s, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_TIMEZONE", "tz must be a numeric UTC offset in hours")
		return 0, false
	}
	if err := validation.ValidateTimezoneOffset(tz); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_TIMEZONE", err.Error())
		return 0, false
	}
	return tz, true
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with
// code, message and the request correlation id if present.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value("correlation_id"); v != nil {
		corrID = v.(string)
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": corrID,
		},
	})
}

// writeComputeError maps service errors to the error envelope. Validation
// failures are the caller's fault; anything else is unexpected, since the
// computation itself is total.
func writeComputeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidCoordinate):
		writeError(w, r, http.StatusBadRequest, "INVALID_COORDINATE", err.Error())
	case errors.Is(err, validation.ErrInvalidDate):
		writeError(w, r, http.StatusBadRequest, "INVALID_DATE", err.Error())
	case errors.Is(err, validation.ErrInvalidTimezone):
		writeError(w, r, http.StatusBadRequest, "INVALID_TIMEZONE", err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "unexpected computation failure")
		if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
			logger.Error("compute error", zap.Error(err))
		}
	}
}
