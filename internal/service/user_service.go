// Package service contains the business logic between HTTP handlers and
// repositories.
package service

import (
	"context"
	"log/slog"
	"time"

	"microlog/internal/auth"
	"microlog/internal/mail"
	"microlog/internal/middleware"
	"microlog/internal/models"
	"microlog/internal/observability"
	"microlog/internal/repository"
	"microlog/internal/validation"
)

// dummyHash is compared against when a login names an unknown account, so
// the request costs one bcrypt verification either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserService struct {
	userRepo repository.UserRepository
	hasher   auth.Hasher
	tokens   *auth.TokenService
	mailer   mail.Mailer
	resetTTL time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	AboutMe  *string
}

func NewUserService(
	userRepo repository.UserRepository,
	hasher auth.Hasher,
	tokens *auth.TokenService,
	mailer mail.Mailer,
	resetTTL time.Duration,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		resetTTL: resetTTL,
	}
}

// Register creates an account. Username and email are stored normalized
// (lowercased, trimmed) so identity comparisons are case-insensitive.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewDuplicateIdentityError("username")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewDuplicateIdentityError("email")
	}

	user := &models.User{
		Username: models.NormalizeUsername(in.Username),
		Email:    models.NormalizeEmail(in.Email),
		LastSeen: time.Now().UTC(),
	}
	if err := s.hasher.Set(user, in.Password); err != nil {
		return nil, err
	}

	// The unique constraints backstop the pre-checks under concurrent signups.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Every failure returns the
// same invalid-credential error, and an unknown username still pays for a
// bcrypt comparison so timing does not reveal account existence.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.Verify(&models.User{PasswordHash: dummyHash}, password)
		return nil, models.NewInvalidCredentialError()
	}
	if !s.hasher.Verify(user, password) {
		return nil, models.NewInvalidCredentialError()
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername resolves a profile by its (case-insensitive) username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxAboutLen = 500

	if in.Username != "" && models.NormalizeUsername(in.Username) != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != user.ID {
			return nil, models.NewDuplicateIdentityError("username")
		}
		user.Username = models.NormalizeUsername(in.Username)
	}
	if in.AboutMe != nil {
		if len(*in.AboutMe) > maxAboutLen {
			return nil, models.NewValidationError("About me too long (max 500 characters)")
		}
		user.AboutMe = *in.AboutMe
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset issues a recovery token for the account behind email
// and hands it to the mailer. When no account matches, it silently does
// nothing: the response must not reveal whether the address is registered.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		middleware.Logger.InfoContext(ctx, "password reset requested for unknown email")
		return nil
	}

	token, err := s.tokens.Issue(user.ID, s.resetTTL)
	if err != nil {
		observability.ResetTokens.WithLabelValues("issue", "error").Inc()
		return err
	}
	observability.ResetTokens.WithLabelValues("issue", "ok").Inc()

	if err := s.mailer.SendPasswordReset(ctx, user, token); err != nil {
		middleware.Logger.ErrorContext(ctx, "reset mail delivery failed",
			slog.Any("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return models.NewInternalError(err)
	}
	return nil
}

// ResetPassword redeems a recovery token and replaces the credential. Any
// malformed, tampered or expired token yields the same invalid-token error.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) (*models.User, error) {
	userID, ok := s.tokens.Verify(token)
	if !ok {
		observability.ResetTokens.WithLabelValues("verify", "invalid").Inc()
		return nil, models.NewInvalidTokenError()
	}
	observability.ResetTokens.WithLabelValues("verify", "ok").Inc()

	if err := validation.ValidatePassword(newPassword); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Set(user, newPassword); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TouchLastSeen stamps the account's last activity time. Called from the
// authenticated request path; failures are logged and swallowed.
func (s *UserService) TouchLastSeen(ctx context.Context, userID uint) {
	if err := s.userRepo.UpdateLastSeen(ctx, userID, time.Now().UTC()); err != nil {
		middleware.Logger.WarnContext(ctx, "last seen update failed",
			slog.Any("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
