package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"

	"kaziid/internal/auth"
	"kaziid/internal/identity"
	"kaziid/internal/session"
	"kaziid/internal/token"
	"kaziid/pkg/domain"
	"kaziid/pkg/profile"
)

// SessionHandler exposes the session service over JSON.
type SessionHandler struct {
	sessions *session.Service
	tokens   *token.Service
}

func NewSessionHandler(sessions *session.Service, tokens *token.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokens: tokens}
}

type signUpRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     string          `json:"role"`
	Profile  profile.Profile `json:"profile"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type selectRoleRequest struct {
	Role string `json:"role"`
}

type identityResponse struct {
	Identity identity.Identity `json:"identity"`
	Token    string            `json:"token,omitempty"`
}

type sessionResponse struct {
	Identity     *identity.Identity `json:"identity"`
	SelectedRole string             `json:"selectedRole,omitempty"`
	Loading      bool               `json:"loading"`
	Initialized  bool               `json:"initialized"`
}

func (h *SessionHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, badRequest("invalid request body"))
		return
	}
	if err := validateEmail(req.Email); err != nil {
		writeError(w, err)
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, badRequest("invalid role"))
		return
	}

	ident, err := h.sessions.SignUp(r.Context(), auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Profile:  req.Profile,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithIdentity(w, http.StatusCreated, ident)
}

func (h *SessionHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, badRequest("invalid request body"))
		return
	}
	if err := validateEmail(req.Email); err != nil {
		writeError(w, err)
		return
	}

	ident, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithIdentity(w, http.StatusOK, ident)
}

func (h *SessionHandler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var partial profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeError(w, badRequest("invalid request body"))
		return
	}

	updated, err := h.sessions.UpdateProfile(r.Context(), partial)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		// Anonymous session: the operation is a no-op.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{Identity: *updated})
}

func (h *SessionHandler) handleSelectRole(w http.ResponseWriter, r *http.Request) {
	var req selectRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, badRequest("invalid request body"))
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, badRequest("invalid role"))
		return
	}
	if err := h.sessions.SetSelectedRole(role); err != nil {
		writeError(w, badRequest("invalid role"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{
		Loading:     h.sessions.Loading(),
		Initialized: h.sessions.Initialized(),
	}
	if ident, ok := h.sessions.Current(); ok {
		resp.Identity = &ident
	}
	if role, ok := h.sessions.SelectedRole(); ok {
		resp.SelectedRole = role.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) respondWithIdentity(w http.ResponseWriter, status int, ident identity.Identity) {
	resp := identityResponse{Identity: ident}
	if h.tokens != nil {
		signed, err := h.tokens.Mint(ident)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Token = signed
	}
	writeJSON(w, status, resp)
}

func validateEmail(addr string) error {
	if !govalidator.StringLength(addr, "3", "255") || !govalidator.IsEmail(addr) {
		return badRequest("invalid email")
	}
	return nil
}
