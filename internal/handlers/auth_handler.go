package handlers

import (
	"crypto/rsa"
	"errors"
	"net/http"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/config"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/auth"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/middlewares"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

type AuthHandler struct {
	users      *services.UserService
	cfg        config.Config
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

func NewAuthHandler(users *services.UserService, cfg config.Config, privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg, privateKey: privateKey, publicKey: publicKey}
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.users.Authenticate(r.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Logger.Error().Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	token, err := auth.GenerateUserToken(*user, h.privateKey, h.cfg.UserTokenTTL)
	if err != nil {
		log.Logger.Error().Err(err).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	refresh, err := auth.GenerateUserRefreshToken(*user, h.privateKey, h.cfg.UserRefreshTokenTTL)
	if err != nil {
		log.Logger.Error().Err(err).Msg("refresh token generation failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.UserID,
		Role:         user.Role,
		Zone:         user.Zone,
	})
}

// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}
	claims, err := auth.ParseUserRefreshToken(req.RefreshToken, h.publicKey)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	user, err := h.users.GetByUserID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return
	}
	token, err := auth.GenerateUserToken(*user, h.privateKey, h.cfg.UserTokenTTL)
	if err != nil {
		log.Logger.Error().Err(err).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middlewares.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	user, err := h.users.GetByUserID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"userId": user.UserID,
		"email":  user.Email,
		"role":   user.Role,
		"zone":   user.Zone,
		"photo":  user.Photo,
		"status": user.Status,
	})
}

// POST /api/v1/auth/logout
//
// Tokens are stateless; logout exists for the client to clear its state
// and for the activity trail.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
