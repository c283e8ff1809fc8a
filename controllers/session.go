package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"quickdel/middleware"
	"quickdel/utils"

	"github.com/sirupsen/logrus"
)

// SessionController issues and clears session cookies
type SessionController struct {
	Secret []byte
	Log    *logrus.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(secret []byte, log *logrus.Logger) *SessionController {
	return &SessionController{
		Secret: secret,
		Log:    log,
	}
}

// IssueToken signs a session token for the supplied identity claims and sets
// it as the session cookie. The cookie is HTTP-only and cross-site enabled so
// the browser client can send it with credentialed requests.
func (sc *SessionController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
		Role  string `json:"role" validate:"omitempty,oneof=user deliveryman admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if details := utils.ValidateStruct(payload); details != nil {
		utils.WriteValidationError(w, details)
		return
	}

	token, err := utils.GenerateJWT(sc.Secret, payload.Email, payload.Role)
	if err != nil {
		sc.Log.WithError(err).Error("signing session token")
		utils.WriteError(w, http.StatusInternalServerError, "error creating token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(utils.TokenLifetime),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout instructs the client to discard the session cookie. The token stays
// cryptographically valid until its natural expiry; there is no server-side
// revocation list.
func (sc *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
