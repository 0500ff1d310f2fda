// Package httptransport is the thin HTTP layer. Handlers delegate to the
// session service without embedding business logic so transport concerns
// remain isolated.
package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kaziid/internal/auth"
	"kaziid/pkg/platform/sentinel"
)

// NewRouter wires the public endpoints around the session handler.
func NewRouter(h *SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(deviceContext)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.handleCurrent)
		r.Post("/signup", h.handleSignUp)
		r.Post("/signin", h.handleSignIn)
		r.Post("/signout", h.handleSignOut)
		r.Patch("/profile", h.handleUpdateProfile)
		r.Put("/role", h.handleSelectRole)
	})
	return r
}

// deviceContext condenses the User-Agent into a device label before the
// handlers run, so audit events can name the device.
func deviceContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := auth.WithDevice(r.Context(), auth.DeviceDisplayName(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// apiError carries a caller-facing message with an HTTP status. Handlers
// return it for validation failures; sentinel errors are translated in
// writeError.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return &apiError{status: http.StatusBadRequest, message: message}
}

// writeError centralizes error translation so every failure uses the same
// JSON envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var api *apiError
	switch {
	case errors.As(err, &api):
		status = api.status
		message = api.message
	case errors.Is(err, sentinel.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "invalid credentials"
	case errors.Is(err, sentinel.ErrConflict):
		status = http.StatusConflict
		message = "account already exists"
	case errors.Is(err, sentinel.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = "service unavailable"
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
