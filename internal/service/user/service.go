package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketplace-api/internal/bus"
	"marketplace-api/internal/domain"
	userrepo "marketplace-api/internal/repository/user"
	tokenstore "marketplace-api/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup/login and the password-change flow.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	bus         bus.Publisher
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

func New(repo userrepo.Repository, tokens tokenstore.Store, publisher bus.Publisher, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		bus:         publisher,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		passwordMin: 8,
	}
}

type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Signup registers a new account. Duplicate emails are a conflict.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.ValidationError("email required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, domain.ValidationError("password too short")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(in.Name),
	})
}

// Login validates credentials and returns issued access/refresh tokens plus
// the user.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, u.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Authenticate resolves an access token to its user id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	return s.tokens.Validate(ctx, token, "access")
}

// Logout revokes the token immediately; TTL eviction covers the rest. A token
// that is already gone counts as logged out.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// ChangePassword verifies the current password, stores the new hash, stamps
// the change time and publishes passwordUpdated.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if len(next) < s.passwordMin {
		return domain.ValidationError("password too short")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	u.PasswordChangedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	s.bus.Publish(ctx, domain.PasswordUpdated{UserID: u.ID})
	return nil
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}
