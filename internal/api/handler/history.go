package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"currconv/internal/conversion"
	"currconv/internal/domain"
)

type AddHistoryRecordRequest struct {
	domain.ConversionResult
	DateSelected string `json:"dateSelected"`
}

func (req *AddHistoryRecordRequest) validate() error {
	from, err := conversion.NormalizeCode(req.From)
	if err != nil {
		return err
	}
	to, err := conversion.NormalizeCode(req.To)
	if err != nil {
		return err
	}
	req.From, req.To = from, to

	if req.Amount <= 0 {
		return domain.InvalidInput("Amount must be positive.")
	}
	if req.Rate <= 0 {
		return domain.InvalidInput("Rate must be positive.")
	}
	if req.DateUsed == "" {
		return domain.InvalidInput("dateUsed is required.")
	}
	return nil
}

// GetHistory godoc
// @Summary List conversion history
// @Description Retrieve all persisted conversion records, newest first
// @Tags History
// @Produce json
// @Success 200 {array} domain.ConversionRecord
// @Router /history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.history.List(r.Context())
	if err != nil {
		logrus.WithError(err).WithField("handler", "GetHistory").Error("failed to read conversion history")
		writeError(w, http.StatusInternalServerError, "failed to read conversion history")
		return
	}

	if records == nil {
		records = []domain.ConversionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// AddHistoryRecord godoc
// @Summary Persist a conversion record
// @Description Store one completed conversion; the server assigns the record id and timestamp
// @Tags History
// @Accept json
// @Produce json
// @Param record body AddHistoryRecordRequest true "Completed conversion"
// @Success 201 {object} domain.ConversionRecord
// @Failure 400 {object} errorResponse
// @Router /history [post]
func (h *Handler) AddHistoryRecord(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4096)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AddHistoryRecordRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.validate(); err != nil {
		writeFailure(w, err, "AddHistoryRecord")
		return
	}

	record := h.history.NewRecord(req.ConversionResult, req.DateSelected)
	if err := h.history.Add(r.Context(), record); err != nil {
		logrus.WithError(err).WithField("handler", "AddHistoryRecord").Error("failed to persist conversion record")
		writeError(w, http.StatusInternalServerError, "failed to persist conversion record")
		return
	}

	writeJSON(w, http.StatusCreated, record)
}
