package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/internal/users"
	"github.com/storescouthq/storescout-backend/pkg/config"
	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
	"github.com/storescouthq/storescout-backend/pkg/security"
)

const resetTokenTTL = time.Hour

type resetUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// PasswordResetService runs the forgot/reset password flow.
type PasswordResetService interface {
	// Forgot stores a one-hour reset token for the account and returns it
	// so the delivery channel (email, for now the API response in dev) can
	// hand it to the user.
	Forgot(ctx context.Context, email string) (string, error)
	Reset(ctx context.Context, req ResetPasswordRequest) (*users.UserDTO, error)
}

// PasswordResetServiceParams packages the reset flow dependencies.
type PasswordResetServiceParams struct {
	UserRepo       resetUserRepository
	PasswordConfig config.PasswordConfig
}

type passwordResetService struct {
	users       resetUserRepository
	passwordCfg config.PasswordConfig
}

// NewPasswordResetService builds the password reset service.
func NewPasswordResetService(params PasswordResetServiceParams) (PasswordResetService, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	return &passwordResetService{
		users:       params.UserRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *passwordResetService) Forgot(ctx context.Context, email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "no account with that email exists")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}

	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}
	return token, nil
}

func (s *passwordResetService) Reset(ctx context.Context, req ResetPasswordRequest) (*users.UserDTO, error) {
	if req.Password != req.PasswordConfirm {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reset token is required")
	}

	user, err := s.users.FindByResetToken(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "password reset is invalid or has expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reset token")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return users.FromModel(user), nil
}
