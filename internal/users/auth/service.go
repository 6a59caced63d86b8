// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/slice"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given identity.
	GenerateAccessToken(identity sec.Identity, timeToLive time.Duration) (string, error)
}

// Service implements account and login use cases.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	logger         *slog.Logger
	now            func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		logger:         logger,
		now:            time.Now,
	}
}

// # Account Administration

// CreateUserInput holds the data required to open an account.
type CreateUserInput struct {
	Username  string `json:"username"   validate:"required,max=150"`
	Email     string `json:"email"      validate:"omitempty,email,max=254"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name"  validate:"max=150"`
	Superuser bool   `json:"is_superuser"`
}

/*
CreateUser validates, hashes, and persists a new account.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *User: Created entity
  - error: Validation, Conflict (username taken) or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsSuperuser:  input.Superuser,
		IsActive:     true,
		Permissions:  []string{},
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("superuser", user.IsSuperuser),
	)
	return user, nil
}

// Grant gives a known permission to the named account.
func (service *Service) Grant(context context.Context, username string, permission sec.Permission) error {
	user, err := service.permissionTarget(context, username, permission)
	if err != nil {
		return err
	}

	if err := service.userRepository.GrantPermission(context, user.ID, string(permission)); err != nil {
		return err
	}

	service.logger.Info("permission_granted", slog.String("user_id", user.ID), slog.String("permission", string(permission)))
	return nil
}

// Revoke takes a permission away from the named account.
func (service *Service) Revoke(context context.Context, username string, permission sec.Permission) error {
	user, err := service.permissionTarget(context, username, permission)
	if err != nil {
		return err
	}

	if err := service.userRepository.RevokePermission(context, user.ID, string(permission)); err != nil {
		return err
	}

	service.logger.Warn("permission_revoked", slog.String("user_id", user.ID), slog.String("permission", string(permission)))
	return nil
}

func (service *Service) permissionTarget(context context.Context, username string, permission sec.Permission) (*User, error) {
	known := slice.Map(sec.KnownPermissions, func(known sec.Permission) string { return string(known) })
	if err := (&validate.Validator{}).OneOf(FieldPermission, string(permission), known...).Err(); err != nil {
		return nil, err
	}
	return service.userRepository.FindByUsername(context, username)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession is the result of a successful login.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

/*
Login validates user credentials and issues an access token.

The token carries the account's permissions as of this login.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Token and the signed-in account
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// A missing account gets the same message as a wrong password to prevent enumeration.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is disabled")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.Identity(), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	loginAt := service.now().UTC()
	if err := service.userRepository.UpdateLastLogin(context, user.ID, loginAt); err != nil {
		// The token is already valid; a stale last-login stamp is not worth failing the login.
		service.logger.Warn("last_login_update_failed", slog.String("user_id", user.ID), slog.String("error", err.Error()))
	} else {
		user.LastLoginAt = &loginAt
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresIn:   constants.AccessTokenTTL,
		User:        user,
	}, nil
}

// Me returns the signed-in account as currently stored.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}
