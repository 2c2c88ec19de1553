package handlers

import (
	"net/http"
	"time"

	"campus-market-service/internal/api/dto"
	"campus-market-service/internal/services"

	"go.uber.org/zap"
)

type MarketHandler struct {
	Service *services.MarketService
	Clock   services.Clock
	Logger  *zap.Logger
}

func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r, h.Logger)
	if !ok {
		return
	}

	markets, err := h.Service.List(r.Context(), token, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, h.Logger, "markets.List", err)
		return
	}

	now := time.Now()
	if h.Clock != nil {
		now = h.Clock.Now()
	}

	res := dto.ListMarketsResponse{Markets: make([]dto.MarketResponse, 0, len(markets))}
	for _, m := range markets {
		item := dto.MarketResponse{
			ID:         m.ID,
			Question:   m.Question,
			Status:     string(m.Status),
			Open:       m.IsOpen(now),
			YesPrice:   m.YesPrice,
			Volume:     m.Volume,
			Resolution: string(m.Resolution),
		}
		if !m.ClosesAt.IsZero() {
			closes := m.ClosesAt
			item.ClosesAt = &closes
		}
		res.Markets = append(res.Markets, item)
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
