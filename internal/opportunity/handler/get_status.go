package handler

import (
	"net/http"
	"slices"
	"time"
)

type GetStatusResponse struct {
	Reference   string             `json:"reference" example:"KES"`
	LastUpdated *time.Time         `json:"last_updated"`
	Rates       map[string]float64 `json:"rates"`
	Unknown     []string           `json:"unknown" example:"TZS"`
}

// GetStatus godoc
// @Summary FX store status
// @Description Reference currency, last successful refresh and the rates currently known
// @Tags Rates
// @Produce json
// @Success 200 {object} GetStatusResponse
// @Router /status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	snap := h.service.Rates()
	rates := snap.Rates()

	unknown := make([]string, 0)
	for _, code := range h.validator.SupportedCodes() {
		if _, ok := rates[code]; !ok {
			unknown = append(unknown, code)
		}
	}
	slices.Sort(unknown)

	writeJSON(w, http.StatusOK, GetStatusResponse{
		Reference:   snap.Reference(),
		LastUpdated: optionalTime(snap.LastUpdated()),
		Rates:       rates,
		Unknown:     unknown,
	})
}
