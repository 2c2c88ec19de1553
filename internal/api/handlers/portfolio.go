package handlers

import (
	"net/http"

	"campus-market-service/internal/api/dto"
	"campus-market-service/internal/services"

	"go.uber.org/zap"
)

type PortfolioHandler struct {
	Service *services.PortfolioService
	Logger  *zap.Logger
}

func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r, h.Logger)
	if !ok {
		return
	}

	p, err := h.Service.Build(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, h.Logger, "portfolio.Build", err)
		return
	}

	res := dto.PortfolioResponse{
		Balance:       p.Balance,
		TotalStaked:   p.TotalStaked,
		OpenPositions: p.OpenPositions,
		Positions:     make([]dto.PositionResponse, 0, len(p.Positions)),
	}
	for _, pos := range p.Positions {
		res.Positions = append(res.Positions, dto.PositionResponse{
			MarketID: pos.MarketID,
			Question: pos.Question,
			Status:   string(pos.Status),
			Open:     pos.Open,
			Side:     string(pos.Side),
			Staked:   pos.Staked,
			Trades:   pos.Trades,
		})
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}

func (h *PortfolioHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r, h.Logger)
	if !ok {
		return
	}

	entries, err := h.Service.Ledger(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, h.Logger, "portfolio.Ledger", err)
		return
	}

	res := dto.LedgerResponse{Entries: make([]dto.LedgerEntryResponse, 0, len(entries))}
	for _, e := range entries {
		res.Entries = append(res.Entries, dto.LedgerEntryResponse{
			ID:        e.ID,
			Kind:      string(e.Kind),
			MarketID:  e.MarketID,
			Side:      string(e.Side),
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt,
		})
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
