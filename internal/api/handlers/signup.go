package handlers

import (
	"net/http"

	"campus-market-service/internal/api/dto"
	"campus-market-service/internal/domain"
	"campus-market-service/internal/services"

	"go.uber.org/zap"
)

// SignupHandler serves the two sign-up wizard steps.
type SignupHandler struct {
	Service *services.SignupService
	Logger  *zap.Logger
}

func toSessionResponse(s *domain.Session) dto.SessionResponse {
	return dto.SessionResponse{Email: s.Email, Name: s.Name, Balance: s.Balance}
}

func (h *SignupHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupStartRequest
	if !decodeJSON(w, r, h.Logger, &req) {
		return
	}

	email, err := h.Service.Start(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, h.Logger, "signup.Start", err)
		return
	}

	writeJSON(w, r, h.Logger, http.StatusAccepted, dto.SignupStartResponse{Email: email, Status: "link_sent"})
}

func (h *SignupHandler) Complete(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r, h.Logger)
	if !ok {
		return
	}

	var req dto.SignupCompleteRequest
	if !decodeJSON(w, r, h.Logger, &req) {
		return
	}

	session, err := h.Service.Complete(r.Context(), token, req.InviteCode)
	if err != nil {
		writeServiceError(w, r, h.Logger, "signup.Complete", err)
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, toSessionResponse(session))
}
