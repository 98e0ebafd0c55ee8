package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
	log         *logrus.Entry
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
		log:         observability.Logger().WithField("component", "auth"),
	}
}

// Register handles account creation requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, signupMessage(err))
		return
	}

	account, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.log.WithError(err).Error("account creation failed")
			errorResponse(w, status, MsgAccountFailed)
			return
		}
		errorResponse(w, status, err.Error())
		return
	}

	h.respondWithToken(w, http.StatusCreated, account)
}

// Login handles login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, (&ErrInvalidCredentials{}).Error())
		return
	}

	account, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.log.WithError(err).Error("login failed")
			errorResponse(w, status, "Login failed")
			return
		}
		errorResponse(w, status, err.Error())
		return
	}

	h.respondWithToken(w, http.StatusOK, account)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	account, err := h.userService.Account(r.Context(), userID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, account)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, account *types.Account) {
	token, err := h.jwtService.GenerateToken(account.ID)
	if err != nil {
		h.log.WithError(err).Error("token generation failed")
		errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	jsonResponse(w, status, types.AuthResponse{Account: account, Token: token})
}

// signupMessage maps the first validation failure of a signup request to its client message.
func signupMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MsgAccountFailed
	}
	switch ve := verrs[0]; ve.Field() {
	case "Name":
		return MsgNameRequired
	case "Email":
		return MsgInvalidEmail
	case "Password":
		return MsgWeakPassword
	case "ConfirmPassword":
		return MsgPasswordsDiffer
	default:
		return MsgAccountFailed
	}
}
