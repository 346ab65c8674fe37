package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"todo_api/internal/app/service"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
	"todo_api/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

const (
	refreshCookieName = "refreshtoken"
	refreshCookiePath = "/api/user/refresh_token"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
	r.Post("/verify-email", h.verifyEmail)
	r.Post("/resend-verification", h.resendVerification)
	r.Post("/forgot-password", h.forgotPassword)
	r.Post("/reset-password", h.resetPassword)
	r.Post("/refresh_token", h.refreshToken)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, struct {
		Message string           `json:"message"`
		User    model.PublicUser `json:"user"`
	}{
		Message: "User registered successfully. Please check your email for verification code.",
		User:    user.Public(),
	})
}

func (h *AuthHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.authService.Signin(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	setRefreshCookie(w, result.RefreshToken)

	common.RespondWithJSON(w, http.StatusOK, struct {
		Message     string           `json:"message"`
		User        model.PublicUser `json:"user"`
		AccessToken string           `json:"access_token"`
	}{
		Message:     "Sign In successfully!",
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.authService.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Email verified successfully"})
}

func (h *AuthHandler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.authService.ResendVerification(r.Context(), req.Email); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Verification code sent successfully"})
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Password reset instructions sent to your email"})
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Password reset successfully"})
}

func (h *AuthHandler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, struct {
		AccessToken string      `json:"access_token"`
		User        *model.User `json:"user"`
	}{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// logout clears the cookie only; the refresh token stays valid until its
// natural expiry.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		HttpOnly: true,
		MaxAge:   -1,
	})
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Logged out successfully!"})
}

// setRefreshCookie scopes the cookie to the refresh endpoint; the cookie
// lifetime is the effective session bound, aligned with the token TTL.
func setRefreshCookie(w http.ResponseWriter, token string) {
	exp := config.AppConfig.RefreshTokenExp
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		HttpOnly: true,
		MaxAge:   int(exp.Seconds()),
		Expires:  time.Now().Add(exp),
	})
}

// respondServiceError maps a service error to status + message. Raw internal
// messages leak only outside production.
func respondServiceError(w http.ResponseWriter, err error) {
	var needsVerification *service.NeedsVerificationError
	if errors.As(err, &needsVerification) {
		common.RespondWithJSON(w, http.StatusForbidden, struct {
			Message           string `json:"message"`
			NeedsVerification bool   `json:"needsVerification"`
			Email             string `json:"email"`
		}{
			Message:           needsVerification.Error(),
			NeedsVerification: true,
			Email:             needsVerification.Email,
		})
		return
	}

	status := common.HTTPStatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, common.ErrEmailDelivery) &&
		config.AppConfig != nil && config.AppConfig.AppEnv == "production" {
		message = "Internal server error"
	}
	common.RespondWithError(w, status, message)
}
