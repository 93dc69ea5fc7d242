package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coursehub/backend/internal/events"
	"github.com/coursehub/backend/internal/hash"
	"github.com/coursehub/backend/internal/logging"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/repo"
	"github.com/coursehub/backend/internal/tokens"
	"github.com/coursehub/backend/internal/transport"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Events    *events.Producer
}

// Signup registers a new user. It never returns a token: the caller must log
// in separately.
func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name required", ErrValidation)
	}

	role := models.RoleStudent
	if req.Role != "" {
		role = models.Role(req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
		}
	}

	taken, err := s.Repo.EmailTaken(ctx, req.Email)
	if err != nil {
		l.Error("signup_failed", "status", 500, "error", err)
		return nil, err
	}
	if taken {
		l.Warn("signup_failed", "status", 409, "reason", "email already in use")
		return nil, fmt.Errorf("%w: email already in use", ErrConflict)
	}

	pwHash, err := hash.Password(req.Password)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			l.Warn("signup_failed", "status", 409, "reason", "email already in use")
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		l.Error("signup_failed", "status", 500, "error", err)
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TypeUserRegistered, strconv.FormatUint(uint64(user.ID), 10), map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	}); err != nil {
		l.Warn("event_publish_failed", "event", events.TypeUserRegistered, "error", err)
	}

	return user, nil
}

// Login checks credentials and issues a bearer token. An unknown email and a
// wrong password produce the same ErrInvalidCredentials so the response cannot
// be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.Issue(s.JWTSecret, strconv.FormatUint(uint64(user.ID), 10), s.TokenTTL)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &transport.LoginResponse{
		Token: token,
		User:  transport.ProjectUser(user),
	}, nil
}
