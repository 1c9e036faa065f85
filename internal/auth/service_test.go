package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/pkg/utils"
)

type fakeUserRepo struct {
	users   map[string]*domain.User
	err     error
	lookups int
	created []*domain.User
}

func (f *fakeUserRepo) FindCredentials(_ context.Context, email string) (*domain.User, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[email], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[email], nil
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, u)
	return nil
}

func newRepoWithUser(email, password string) *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{
		email: {ID: "u1", Email: email, PasswordHash: utils.HashPassword(password)},
	}}
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := newRepoWithUser("user@nextmail.com", "123456")
	s := NewService(repo, zap.NewNop())

	u, err := s.Authenticate(context.Background(), "user@nextmail.com", "123456")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "user@nextmail.com", u.Email)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := NewService(newRepoWithUser("user@nextmail.com", "123456"), zap.NewNop())

	u, err := s.Authenticate(context.Background(), "user@nextmail.com", "654321")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	s := NewService(&fakeUserRepo{users: map[string]*domain.User{}}, zap.NewNop())

	u, err := s.Authenticate(context.Background(), "nobody@example.com", "123456")
	require.NoError(t, err)
	assert.Nil(t, u, "unknown email must look exactly like a wrong password")
}

func TestAuthenticateRejectsBadShapeWithoutLookup(t *testing.T) {
	repo := newRepoWithUser("user@nextmail.com", "123456")
	s := NewService(repo, zap.NewNop())

	u, err := s.Authenticate(context.Background(), "not-an-email", "123456")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = s.Authenticate(context.Background(), "user@nextmail.com", "12345")
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.Zero(t, repo.lookups, "malformed credentials never hit the store")
}

func TestAuthenticateLookupFailure(t *testing.T) {
	s := NewService(&fakeUserRepo{err: errors.New("conn refused")}, zap.NewNop())

	u, err := s.Authenticate(context.Background(), "user@nextmail.com", "123456")
	require.Error(t, err)
	assert.Nil(t, u)
	assert.EqualError(t, err, "failed to fetch user")
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	s := NewService(repo, zap.NewNop())

	u, err := s.Register(context.Background(), "Amy", "amy@burns.com", "hunter22")
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "amy@burns.com", u.Email)
	assert.True(t, utils.CheckPassword("hunter22", repo.created[0].PasswordHash))
}

func TestRegisterEmailTaken(t *testing.T) {
	s := NewService(newRepoWithUser("amy@burns.com", "123456"), zap.NewNop())

	_, err := s.Register(context.Background(), "Amy", "amy@burns.com", "hunter22")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
