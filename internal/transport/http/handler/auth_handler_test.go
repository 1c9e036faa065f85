package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authsvc "go-invoice-dashboard/internal/auth"
	coreauth "go-invoice-dashboard/internal/core/auth"
	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/pkg/utils"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) FindCredentials(_ context.Context, email string) (*domain.User, error) {
	return s.users[email], nil
}
func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.users[email], nil
}
func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }

func newAuthRouter() (*gin.Engine, *coreauth.JWTer) {
	gin.SetMode(gin.TestMode)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user@nextmail.com": {ID: "u1", Email: "user@nextmail.com", PasswordHash: utils.HashPassword("123456")},
	}}
	jwter := &coreauth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Minute}
	h := NewAuthHandler(authsvc.NewService(repo, zap.NewNop()), jwter)
	r := gin.New()
	h.MountAPI(r.Group("/api/v1"))
	return r, jwter
}

func TestLoginIssuesToken(t *testing.T) {
	r, jwter := newAuthRouter()

	w := postJSON(r, "/api/v1/auth/login", `{"email":"user@nextmail.com","password":"123456"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)

	claims, err := jwter.Parse(body.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "user@nextmail.com", claims.Email)
}

func TestLoginFailureIsUniform(t *testing.T) {
	r, _ := newAuthRouter()

	wrongPw := postJSON(r, "/api/v1/auth/login", `{"email":"user@nextmail.com","password":"654321"}`)
	unknown := postJSON(r, "/api/v1/auth/login", `{"email":"ghost@nextmail.com","password":"123456"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// same body for both, so responses cannot enumerate users
	assert.JSONEq(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newAuthRouter()

	w := postJSON(r, "/api/v1/auth/register", `{"email":"bad","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
