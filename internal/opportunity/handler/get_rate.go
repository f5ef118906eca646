package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type GetRateResponse struct {
	Currency  string    `json:"currency" example:"UGX"`
	Reference string    `json:"reference" example:"KES"`
	Value     float64   `json:"value" example:"0.036"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetRate godoc
// @Summary Get one FX rate
// @Description How many units of the reference currency one unit of code is worth
// @Tags Rates
// @Produce json
// @Param code path string true "Currency code" example(UGX)
// @Success 200 {object} GetRateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /rates/{code} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))

	if err := h.validator.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rate, ok := h.service.Rates().Rate(code)
	if !ok {
		writeError(w, http.StatusNotFound, "rate not found")
		return
	}

	writeJSON(w, http.StatusOK, GetRateResponse{
		Currency:  rate.Currency,
		Reference: rate.Reference,
		Value:     rate.Value,
		UpdatedAt: rate.UpdatedAt,
	})
}
