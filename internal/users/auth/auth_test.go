// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockUserRepository) GrantPermission(ctx context.Context, id, permission string) error {
	return m.Called(ctx, id, permission).Error(0)
}

func (m *mockUserRepository) RevokePermission(ctx context.Context, id, permission string) error {
	return m.Called(ctx, id, permission).Error(0)
}

func tokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKey(key, "locallibrary.test")
}

func librarian(t *testing.T, active bool) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)
	return &auth.User{
		ID:           testutil.StaffID,
		Username:     "librarian",
		PasswordHash: hash,
		IsActive:     active,
		Permissions:  []string{string(sec.PermCanMarkReturned)},
	}
}

/*
TestLogin_IssuesTokenWithPermissions verifies the token carries the grants
the route guards check.
*/
func TestLogin_IssuesTokenWithPermissions(t *testing.T) {
	tokens := tokenService(t)
	repo := &mockUserRepository{}
	repo.On("FindByUsername", mock.Anything, "librarian").Return(librarian(t, true), nil)
	repo.On("UpdateLastLogin", mock.Anything, testutil.StaffID, mock.Anything).Return(nil)

	mount := func(router chi.Router) {
		router.Route("/auth", auth.NewHandler(auth.NewService(repo, tokens, testutil.Logger())).RegisterRoutes)
	}

	recorder := testutil.Serve(t, mount, testutil.Request{
		Method: http.MethodPost, Path: "/auth/login",
		Body: map[string]string{"username": "librarian", "password": "correct horse"},
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var session struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		User        struct {
			Username     string  `json:"username"`
			PasswordHash *string `json:"password_hash"`
		} `json:"user"`
	}
	testutil.DecodeInto(t, recorder, &session)

	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, int((12 * time.Hour).Seconds()), session.ExpiresIn)
	assert.Nil(t, session.User.PasswordHash)
	assert.NotContains(t, recorder.Body.String(), "$2a$")

	claims, err := tokens.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.Has(sec.PermCanMarkReturned))
	assert.Equal(t, testutil.StaffID, claims.UserID)
}

/*
TestLogin_Failures covers wrong credentials, unknown users and disabled accounts.
*/
func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		user     *auth.User
		findErr  error
		password string
		status   int
	}{
		{"wrong password", librarian(t, true), nil, "battery staple", http.StatusUnauthorized},
		{"unknown user", nil, apperr.NotFound("User"), "correct horse", http.StatusUnauthorized},
		{"disabled account", librarian(t, false), nil, "correct horse", http.StatusForbidden},
		{"database down", nil, apperr.Internal(errors.New("connection refused")), "correct horse", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{}
			repo.On("FindByUsername", mock.Anything, "librarian").Return(tt.user, tt.findErr)

			_, err := auth.NewService(repo, tokenService(t), testutil.Logger()).Login(context.Background(), auth.LoginInput{
				Username: "librarian", Password: tt.password,
			})

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

/*
TestMe_RequiresAuthentication verifies the profile endpoint is guarded.
*/
func TestMe_RequiresAuthentication(t *testing.T) {
	repo := &mockUserRepository{}
	repo.On("FindByID", mock.Anything, testutil.MemberID).Return(&auth.User{ID: testutil.MemberID, Username: "reader", Permissions: []string{}}, nil)

	mount := func(router chi.Router) {
		router.Route("/auth", auth.NewHandler(auth.NewService(repo, tokenService(t), testutil.Logger())).RegisterRoutes)
	}

	recorder := testutil.Serve(t, mount, testutil.Request{Method: http.MethodGet, Path: "/auth/me"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = testutil.Serve(t, mount, testutil.Request{Method: http.MethodGet, Path: "/auth/me", Claims: testutil.Member()})
	require.Equal(t, http.StatusOK, recorder.Code)

	var user auth.User
	testutil.DecodeInto(t, recorder, &user)
	assert.Equal(t, "reader", user.Username)
}

/*
TestCreateUser verifies hashing, validation and the default active flag.
*/
func TestCreateUser(t *testing.T) {
	repo := &mockUserRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	service := auth.NewService(repo, tokenService(t), testutil.Logger())

	user, err := service.CreateUser(context.Background(), auth.CreateUserInput{Username: " reader ", Password: "long enough"})
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
	assert.True(t, user.IsActive)
	assert.True(t, sec.CheckPasswordHash("long enough", user.PasswordHash))
	assert.Len(t, user.ID, 36)

	_, err = service.CreateUser(context.Background(), auth.CreateUserInput{Username: "x", Password: "short", Email: "nope"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 2)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

/*
TestGrantRevoke verifies only known permissions can be granted.
*/
func TestGrantRevoke(t *testing.T) {
	repo := &mockUserRepository{}
	repo.On("FindByUsername", mock.Anything, "reader").Return(&auth.User{ID: testutil.MemberID}, nil)
	repo.On("GrantPermission", mock.Anything, testutil.MemberID, "catalog.can_mark_returned").Return(nil)
	repo.On("RevokePermission", mock.Anything, testutil.MemberID, "catalog.can_mark_returned").Return(nil)
	service := auth.NewService(repo, tokenService(t), testutil.Logger())
	ctx := context.Background()

	require.NoError(t, service.Grant(ctx, "reader", sec.PermCanMarkReturned))
	require.NoError(t, service.Revoke(ctx, "reader", sec.PermCanMarkReturned))

	err := service.Grant(ctx, "reader", sec.Permission("catalog.can_burn_books"))
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, auth.FieldPermission, appErr.Details[0].Field)
	assert.Equal(t, "Must be one of: catalog.can_mark_returned", appErr.Details[0].Message)
	repo.AssertNumberOfCalls(t, "GrantPermission", 1)
}
