package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultTokenName = "api"

// dummyPasswordHash is compared against when the email is unknown so both
// failure paths pay the bcrypt cost.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("catalog-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("dummyPasswordHash: %v", err)
	}
	return string(hash)
})

type RegisterInput struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=100"`
	Password             string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IssuedToken is the only place the plain token exists.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users     repositories.UserRepositoryImpl
	tokens    repositories.TokenRepositoryImpl
	validator *validator.Validate
	tokenTTL  time.Duration
	now       func() time.Time
	compare   func(hash string, password []byte) bool
}

func NewAuthService(users repositories.UserRepositoryImpl, tokens repositories.TokenRepositoryImpl, v *validator.Validate, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		validator: v,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		compare:   helpers.PasswordCompare,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	fields := validationFields(s.validator, in)

	if _, bad := fields["email"]; !bad {
		existing, err := s.users.FindByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			fields["email"] = "The email has already been taken."
		}
	}
	if err := failed(fields); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(in.Name, in.Email, hash)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %q: %w", in.Email, ErrConflict)
		}
		log.Printf("AuthService.Register: failed to create user %q: %v", in.Email, err)
		return nil, err
	}
	return user, nil
}

// Login answers ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*IssuedToken, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := failed(validationFields(s.validator, in)); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.compare(dummyPasswordHash(), []byte(in.Password))
		return nil, ErrInvalidCredentials
	}
	if !s.compare(user.Password, []byte(in.Password)) {
		return nil, ErrInvalidCredentials
	}

	selector, verifier, plain, err := helpers.GenerateTokenParts()
	if err != nil {
		return nil, err
	}
	verifierHash, err := bcrypt.GenerateFromPassword([]byte(verifier), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash token: %w", err)
	}

	expiresAt := s.now().Add(s.tokenTTL)
	token := models.NewPersonalAccessToken(user.ID, DefaultTokenName, selector, string(verifierHash), expiresAt)
	if err := s.tokens.Create(ctx, token); err != nil {
		log.Printf("AuthService.Login: failed to store token for user %s: %v", user.ID, err)
		return nil, err
	}

	return &IssuedToken{Token: plain, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to its user and records its use.
func (s *AuthService) Authenticate(ctx context.Context, plain string) (*models.User, *models.PersonalAccessToken, error) {
	selector, verifier, ok := helpers.SplitToken(plain)
	if !ok {
		return nil, nil, ErrUnauthenticated
	}

	token, err := s.tokens.FindBySelector(ctx, selector)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	if token == nil || token.Expired(now) {
		return nil, nil, ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(verifier)) != nil {
		return nil, nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUnauthenticated
	}

	if err := s.tokens.Touch(ctx, token.ID, now); err != nil {
		log.Printf("AuthService.Authenticate: %v", err)
	} else {
		token.LastUsedAt = &now
	}
	return user, token, nil
}

// Logout revokes every token of the user.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.tokens.DeleteByUserID(ctx, userID)
}
