package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"currconv/internal/domain"
)

type ConversionService interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error)
}

type CatalogService interface {
	GetCurrencies(ctx context.Context) ([]domain.CurrencySummary, error)
}

type HistoryService interface {
	NewRecord(result domain.ConversionResult, dateSelected string) domain.ConversionRecord
	Add(ctx context.Context, record domain.ConversionRecord) error
	List(ctx context.Context) ([]domain.ConversionRecord, error)
}

type Handler struct {
	conversions ConversionService
	catalog     CatalogService
	history     HistoryService
}

func NewHandler(conversions ConversionService, catalog CatalogService, history HistoryService) *Handler {
	return &Handler{conversions: conversions, catalog: catalog, history: history}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

// writeFailure maps a service failure onto one externally observable error
// with a status code and message.
func writeFailure(w http.ResponseWriter, err error, handlerName string) {
	var convErr *domain.ConversionError
	if errors.As(err, &convErr) {
		status := statusForKind(convErr.Kind)
		if status >= http.StatusInternalServerError {
			logrus.WithError(err).WithField("handler", handlerName).Error("upstream failure")
		}
		writeError(w, status, convErr.Message)
		return
	}

	logrus.WithError(err).WithField("handler", handlerName).Error("unexpected failure")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func statusForKind(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureInvalidInput, domain.FailureUpstreamRejected:
		return http.StatusBadRequest
	case domain.FailureRateLimited:
		return http.StatusTooManyRequests
	case domain.FailureUpstreamUnavailable, domain.FailureRateUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
