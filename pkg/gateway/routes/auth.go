package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	gatewayauth "github.com/Radpid/radGPT/pkg/gateway/auth"
	"github.com/Radpid/radGPT/pkg/gateway/middleware"
	"github.com/Radpid/radGPT/pkg/identity"
	"github.com/Radpid/radGPT/pkg/observability/metrics"
	"github.com/gorilla/mux"
)

type AuthHandler struct {
	service     *identity.Service
	tokenSigner *gatewayauth.JWTManager
	sso         *gatewayauth.OIDCAuthenticator
}

func NewAuthHandler(service *identity.Service, tokenSigner *gatewayauth.JWTManager, sso *gatewayauth.OIDCAuthenticator) *AuthHandler {
	return &AuthHandler{service: service, tokenSigner: tokenSigner, sso: sso}
}

func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/login", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/sso/login", h.handleSSOLogin).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate(h.tokenSigner))
	protected.HandleFunc("/me", h.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/register", h.handleRegister).Methods(http.MethodPost)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Log.WithError(err).Warn("authentication failed")
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokenSigner.IssueToken(user)
	if err != nil {
		logger.Log.WithError(err).Error("failed issuing token")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	metrics.IncLogins()
	respondJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		Type:  "bearer",
		User:  user,
	})
}

// handleSSOLogin redirects to the configured OIDC provider. Deployments
// without SSO get a 404.
func (h *AuthHandler) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if h.sso == nil {
		http.Error(w, "single sign-on not configured", http.StatusNotFound)
		return
	}
	state := r.URL.Query().Get("state")
	if state == "" {
		state = "radgpt"
	}
	http.Redirect(w, r, h.sso.AuthCodeURL(state), http.StatusFound)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req)
	if errors.Is(err, identity.ErrEmailTaken) {
		http.Error(w, "email already registered", http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Warn("failed to register user")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load current user")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("failed to encode response")
	}
}
