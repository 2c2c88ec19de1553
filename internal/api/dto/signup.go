package dto

type SignupStartRequest struct {
	Email string `json:"email"`
}

type SignupStartResponse struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

type SignupCompleteRequest struct {
	InviteCode string `json:"invite_code"`
}

type SessionResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}
