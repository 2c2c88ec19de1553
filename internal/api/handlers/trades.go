package handlers

import (
	"net/http"

	"campus-market-service/internal/api/dto"
	"campus-market-service/internal/services"

	"go.uber.org/zap"
)

const (
	defaultReceiptsLimit = 50
	maxReceiptsLimit     = 200
)

type TradeHandler struct {
	Service *services.TradeService
	Logger  *zap.Logger
}

func (h *TradeHandler) Place(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r, h.Logger)
	if !ok {
		return
	}

	var req dto.TradeRequest
	if !decodeJSON(w, r, h.Logger, &req) {
		return
	}

	result, err := h.Service.Place(r.Context(), token, services.PlaceTradeRequest{
		MarketID: req.MarketID,
		Side:     req.Side,
		Stake:    req.Stake,
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, "trades.Place", err)
		return
	}

	writeJSON(w, r, h.Logger, http.StatusCreated, dto.TradeResponse{
		TradeID:  result.TradeID,
		MarketID: result.MarketID,
		Side:     string(result.Side),
		Stake:    result.Stake,
		Balance:  result.Balance,
		PlacedAt: result.PlacedAt,
	})
}

func (h *TradeHandler) Receipts(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r, h.Logger)
	if !ok {
		return
	}

	limit, ok := queryLimit(w, r, h.Logger, defaultReceiptsLimit, maxReceiptsLimit)
	if !ok {
		return
	}

	receipts, err := h.Service.Receipts(r.Context(), token, limit)
	if err != nil {
		writeServiceError(w, r, h.Logger, "trades.Receipts", err)
		return
	}

	res := dto.ListReceiptsResponse{Receipts: make([]dto.ReceiptResponse, 0, len(receipts))}
	for _, rc := range receipts {
		res.Receipts = append(res.Receipts, dto.ReceiptResponse{
			ID:            rc.ID,
			MarketID:      rc.MarketID,
			Side:          string(rc.Side),
			Stake:         rc.Stake,
			RemoteTradeID: rc.RemoteTradeID,
			PlacedAt:      rc.PlacedAt,
		})
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
