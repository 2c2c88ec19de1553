package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/ports"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerOrNop(logger).Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, msg string) {
	writeJSON(w, r, logger, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields into v.
// On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, logger, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, logger, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// On failure it writes a 401 and returns false.
func bearerToken(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		writeError(w, r, logger, http.StatusUnauthorized, "missing bearer token")
		return "", false
	}
	return token, true
}

// queryLimit parses ?limit=, returning fallback when absent. Values outside
// 1..max write a 400 and return false.
func queryLimit(w http.ResponseWriter, r *http.Request, logger *zap.Logger, fallback, max int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return fallback, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		writeError(w, r, logger, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(max))
		return 0, false
	}
	return n, true
}

var validationErrors = []error{
	domain.ErrInvalidSide,
	domain.ErrInvalidStake,
	domain.ErrInsufficientBalance,
	domain.ErrMarketClosed,
	domain.ErrInvalidEmail,
	domain.ErrNonInstitutionalMail,
	domain.ErrInvalidInviteCode,
}

// writeServiceError maps a service error onto a status code. Only sentinel
// messages reach the client; the full error is logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string, err error) {
	logger = loggerOrNop(logger)
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			writeError(w, r, logger, http.StatusBadRequest, v.Error())
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrMarketNotFound):
		writeError(w, r, logger, http.StatusNotFound, domain.ErrMarketNotFound.Error())
		return
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, logger, http.StatusNotFound, "not found")
		return
	case errors.Is(err, ports.ErrUnauthorized):
		writeError(w, r, logger, http.StatusUnauthorized, "unauthorized")
		return
	case errors.Is(err, ports.ErrRejected):
		writeError(w, r, logger, http.StatusBadRequest, "request rejected by market service")
		return
	}

	fields := []zap.Field{
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("op", op),
		zap.Error(err),
	}

	switch {
	case errors.Is(err, ports.ErrUpstream):
		logger.Warn("market service unavailable", fields...)
		writeError(w, r, logger, http.StatusBadGateway, "market service unavailable")
	case errors.Is(err, context.Canceled):
		logger.Debug("request cancelled", fields...)
	default:
		logger.Error("request failed", fields...)
		writeError(w, r, logger, http.StatusInternalServerError, "internal server error")
	}
}
