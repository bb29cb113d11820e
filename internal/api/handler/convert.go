package handler

import (
	"net/http"

	"currconv/internal/conversion"
	"currconv/internal/domain"
)

// Convert godoc
// @Summary Convert an amount between currencies
// @Description Resolve the exchange rate for a currency pair, optionally for a past date, and compute the converted amount
// @Tags Conversion
// @Produce json
// @Param from query string true "Source currency code" example(USD)
// @Param to query string true "Target currency code" example(EUR)
// @Param amount query number true "Amount to convert, at least 0.01" example(10)
// @Param date query string false "Historical date (YYYY-MM-DD), not after today UTC" example(2024-01-01)
// @Success 200 {object} domain.ConversionResult
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := conversion.ParseAmount(q.Get("amount"))
	if err != nil {
		writeFailure(w, err, "Convert")
		return
	}

	req := domain.ConversionRequest{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Amount: amount,
		Date:   q.Get("date"),
	}

	result, err := h.conversions.Convert(r.Context(), req)
	if err != nil {
		writeFailure(w, err, "Convert")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
