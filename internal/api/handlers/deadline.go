package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"campus-market-service/internal/api/dto"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/services"

	"go.uber.org/zap"
)

type DeadlineHandler struct {
	Service  *services.DeadlineService
	Interval time.Duration
	Logger   *zap.Logger
}

func toDeadlineResponse(s services.DeadlineSnapshot) dto.DeadlineResponse {
	return dto.DeadlineResponse{
		Now:              s.Now,
		Deadline:         s.Deadline,
		Label:            s.Label,
		Countdown:        s.Countdown.String(),
		SecondsRemaining: int64(s.Countdown.Remaining() / time.Second),
	}
}

func (h *DeadlineHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Snapshot()
	if err != nil {
		writeServiceError(w, r, h.Logger, "deadline.Get", err)
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, toDeadlineResponse(snap))
}

// Stream sends a "countdown" server-sent event every interval until the
// client disconnects.
func (h *DeadlineHandler) Stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	defer obs.StreamOpened()()

	err := h.Service.Stream(r.Context(), h.Interval, func(s services.DeadlineSnapshot) error {
		raw, err := json.Marshal(toDeadlineResponse(s))
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if _, err := fmt.Fprintf(w, "event: countdown\ndata: %s\n\n", raw); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
		if err := rc.Flush(); err != nil {
			return fmt.Errorf("flush event: %w", err)
		}
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		loggerOrNop(h.Logger).Warn("countdown stream ended",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
	}
}
