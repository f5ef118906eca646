package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type GetOpportunitiesResponse struct {
	CycleID        string         `json:"cycle_id" example:"3f1c2a4e-8a3b-4d0e-9b61-0f2d6a7c9e11"`
	Mode           string         `json:"mode" example:"all_pairs"`
	Status         string         `json:"status" example:"ok"`
	Reason         string         `json:"reason,omitempty"`
	Reference      string         `json:"reference" example:"KES"`
	RatesUpdatedAt *time.Time     `json:"rates_updated_at"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Capital        float64        `json:"capital" example:"10000"`
	TopK           int            `json:"top_k" example:"10"`
	Routes         []RouteView    `json:"routes"`
	Corridors      []CorridorView `json:"corridors"`
	Sources        []SourceView   `json:"sources"`
	Dropped        DroppedView    `json:"dropped"`
}

// GetOpportunities godoc
// @Summary Find arbitrage opportunities
// @Description Runs one evaluation cycle over fresh marketplace quotes. When too few quotes survive normalization the response is 200 with status insufficient_data.
// @Tags Opportunities
// @Produce json
// @Param mode query string false "all_pairs or corridor"
// @Param capital query number false "Capital in the reference currency, > 0"
// @Param top_k query integer false "Max routes returned in all_pairs mode, 0 means all"
// @Success 200 {object} GetOpportunitiesResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /opportunities [get]
func (h *Handler) GetOpportunities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := h.validator.ParseParams(q.Get("mode"), q.Get("capital"), q.Get("top_k"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.service.Opportunities(r.Context(), params)
	if err != nil {
		msg := "ups, couldn't compute opportunities this time"
		logrus.WithError(err).WithField("handler", "GetOpportunities").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetOpportunitiesResponse{
		CycleID:        res.CycleID.String(),
		Mode:           string(res.Mode),
		Status:         string(res.Status),
		Reason:         res.Reason,
		Reference:      res.Reference,
		RatesUpdatedAt: optionalTime(res.RatesUpdatedAt),
		GeneratedAt:    res.GeneratedAt,
		Capital:        money(res.Capital),
		TopK:           res.TopK,
		Routes:         toRouteViews(res.Routes),
		Corridors:      toCorridorViews(res.Corridors),
		Sources:        toSourceViews(res.Sources),
		Dropped:        toDroppedView(res.Dropped),
	})
}
