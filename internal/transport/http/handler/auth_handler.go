package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authsvc "go-invoice-dashboard/internal/auth"
	coreauth "go-invoice-dashboard/internal/core/auth"
	httpez "go-invoice-dashboard/internal/transport/http/ez"
)

type AuthHandler struct {
	svc   *authsvc.Service
	jwter *coreauth.JWTer
}

func NewAuthHandler(svc *authsvc.Service, jwter *coreauth.JWTer) *AuthHandler {
	return &AuthHandler{svc: svc, jwter: jwter}
}

type sessionUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// MountAPI registers /auth/login and /auth/register. A failed login is
// a single 401 regardless of whether the email exists or the password
// was wrong.
func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g)

	type loginIn struct {
		Email    string `json:"email"    binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string      `json:"token"`
		User  sessionUser `json:"user"`
	}
	httpez.Register(ez, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			u, err := h.svc.Authenticate(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, httpez.Internal("login failed", err)
			}
			if u == nil {
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}
			tok, err := h.jwter.Issue(u.ID, u.Email)
			if err != nil {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{
				Token: tok,
				User:  sessionUser{Email: u.Email, Name: u.Name},
			}, nil
		},
	})

	type registerIn struct {
		Name     string `json:"name"     binding:"omitempty,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	httpez.Register(ez, httpez.Action[registerIn, sessionUser]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (sessionUser, error) {
			u, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
			if err != nil {
				if errors.Is(err, authsvc.ErrEmailTaken) {
					return sessionUser{}, httpez.BadRequest("email already registered")
				}
				return sessionUser{}, httpez.Internal("register failed", err)
			}
			return sessionUser{Email: u.Email, Name: u.Name}, nil
		},
	})
}
