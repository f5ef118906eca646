package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type GetQuotesResponse struct {
	CycleID     string       `json:"cycle_id"`
	Reference   string       `json:"reference" example:"KES"`
	GeneratedAt time.Time    `json:"generated_at"`
	Books       []BookView   `json:"books"`
	Sources     []SourceView `json:"sources"`
	Dropped     DroppedView  `json:"dropped"`
}

// GetQuotes godoc
// @Summary Current normalized quotes
// @Description Fetches every marketplace and returns the normalized quotes grouped per marketplace and fiat
// @Tags Opportunities
// @Produce json
// @Success 200 {object} GetQuotesResponse
// @Failure 500 {object} errorResponse
// @Router /quotes [get]
func (h *Handler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Quotes(r.Context())
	if err != nil {
		msg := "ups, couldn't fetch quotes this time"
		logrus.WithError(err).WithField("handler", "GetQuotes").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	books := make([]BookView, 0, len(snap.Books))
	for _, b := range snap.Books {
		books = append(books, BookView{
			Marketplace: b.Marketplace,
			Fiat:        b.Fiat,
			Asks:        toQuoteViews(b.Asks),
			Bids:        toQuoteViews(b.Bids),
		})
	}

	writeJSON(w, http.StatusOK, GetQuotesResponse{
		CycleID:     snap.CycleID.String(),
		Reference:   snap.Reference,
		GeneratedAt: snap.GeneratedAt,
		Books:       books,
		Sources:     toSourceViews(snap.Sources),
		Dropped:     toDroppedView(snap.Dropped),
	})
}
