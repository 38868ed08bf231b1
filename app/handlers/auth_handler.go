package handlers

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/go-catalog/app/middlewares"
	"github.com/Rakhulsr/go-catalog/app/resources"
	"github.com/Rakhulsr/go-catalog/app/services"
)

type AuthHandler struct {
	respond     *Responder
	auth        *services.AuthService
	transformer *resources.Transformer
}

func NewAuthHandler(respond *Responder, auth *services.AuthService, transformer *resources.Transformer) *AuthHandler {
	return &AuthHandler{respond: respond, auth: auth, transformer: transformer}
}

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	err := bind(r, &in, func(f form) error {
		in.Name = f.value("name")
		in.Email = f.value("email")
		in.Password = f.value("password")
		in.PasswordConfirmation = f.value("password_confirmation")
		return nil
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), in)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusCreated, h.transformer.User(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	err := bind(r, &in, func(f form) error {
		in.Email = f.value("email")
		in.Password = f.value("password")
		return nil
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	issued, err := h.auth.Login(r.Context(), in)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.JSON(w, http.StatusOK, tokenResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresAt: issued.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.CurrentUser(r)
	if !ok {
		h.respond.Error(w, r, services.ErrUnauthenticated)
		return
	}
	if err := h.auth.Logout(r.Context(), user.ID); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.CurrentUser(r)
	if !ok {
		h.respond.Error(w, r, services.ErrUnauthenticated)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.User(user))
}
