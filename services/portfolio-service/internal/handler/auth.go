package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/payload"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/usecase"
	"github.com/vasapolrittideah/portfolio-api/shared/respond"
	"github.com/vasapolrittideah/portfolio-api/shared/validation"
)

type AuthHandler struct {
	auth      usecase.AuthUsecase
	validator *validation.Validator
}

func NewAuthHandler(auth usecase.AuthUsecase, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: auth, validator: validator}
}

func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/login/google", h.LoginWithGoogle)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decode(w, r, &req, h.validator); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), usecase.RegisterParams{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		WaLink:         req.WaLink,
		Intro:          req.Intro,
		About:          req.About,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, payload.RegisterResponse{ID: result.CustomerID, JWT: result.Token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decode(w, r, &req, h.validator); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.auth.Login(r.Context(), usecase.LoginParams{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, payload.LoginResponse{JWT: token})
}

func (h *AuthHandler) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleLoginRequest
	if err := decode(w, r, &req, h.validator); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.auth.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, payload.LoginResponse{JWT: token})
}
