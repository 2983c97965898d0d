package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
	pkgAuth "github.com/campusbites/canteen/internal/pkg/auth"
	"github.com/campusbites/canteen/internal/pkg/otp"
)

// RegisterInput carries everything a new account needs.
type RegisterInput struct {
	Login     string
	Password  string
	Email     string
	FullName  string
	Phone     string
	CollegeID string
	Role      model.Role
}

// AuthUseCase handles user lifecycle, tokens and email verification.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	codes  *otp.Store
	sender otp.Sender
	logger *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, codes *otp.Store, sender otp.Sender, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, codes: codes, sender: sender, logger: logger}
}

// Register creates a new user with login/password and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = model.RoleStudent
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Login:        in.Login,
		PasswordHash: hash,
		Email:        strings.TrimSpace(in.Email),
		FullName:     in.FullName,
		Phone:        in.Phone,
		CollegeID:    in.CollegeID,
		Role:         role,
	})
	if err != nil {
		return nil, "", err
	}

	if usr.Email != "" {
		if err := u.sendCode(ctx, usr.Email); err != nil {
			u.logger.Error("otp delivery failed", "email", usr.Email, "error", err)
		}
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// RequestOTP issues a fresh verification code for the email.
func (u *AuthUseCase) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domainErrors.ErrInvalidCredentials
	}
	return u.sendCode(ctx, email)
}

// VerifyOTP checks the code and marks the account's email verified.
func (u *AuthUseCase) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	if err := u.codes.Verify(email, code); err != nil {
		return err
	}
	if err := u.users.MarkEmailVerified(ctx, email); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	return nil
}

func (u *AuthUseCase) sendCode(ctx context.Context, email string) error {
	code, err := u.codes.Issue(email)
	if err != nil {
		return err
	}
	return u.sender.Send(ctx, email, code)
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
