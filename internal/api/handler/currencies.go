package handler

import (
	"net/http"

	"currconv/internal/domain"
)

// GetCurrencies godoc
// @Summary List supported currencies
// @Description Retrieve the currency catalog, sorted ascending by code
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.CurrencySummary
// @Failure 429 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.catalog.GetCurrencies(r.Context())
	if err != nil {
		writeFailure(w, err, "GetCurrencies")
		return
	}

	if currencies == nil {
		currencies = []domain.CurrencySummary{}
	}
	writeJSON(w, http.StatusOK, currencies)
}
