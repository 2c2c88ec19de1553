package handlers

import (
	"net/http"

	"campus-market-service/internal/api/dto"
	"campus-market-service/internal/services"

	"go.uber.org/zap"
)

const maxLeaderboardLimit = 100

type LeaderboardHandler struct {
	Service *services.LeaderboardService
	Logger  *zap.Logger
}

func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r, h.Logger)
	if !ok {
		return
	}

	limit, ok := queryLimit(w, r, h.Logger, maxLeaderboardLimit, maxLeaderboardLimit)
	if !ok {
		return
	}

	entries, err := h.Service.List(r.Context(), token, limit)
	if err != nil {
		writeServiceError(w, r, h.Logger, "leaderboard.List", err)
		return
	}

	res := dto.LeaderboardResponse{Entries: make([]dto.LeaderboardEntryResponse, 0, len(entries))}
	for _, e := range entries {
		res.Entries = append(res.Entries, dto.LeaderboardEntryResponse{
			Rank:    e.Rank,
			Name:    e.Name,
			Balance: e.Balance,
		})
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
