package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace-api/internal/domain"
	tokenstore "marketplace-api/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	updated *domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, exists := f.byEmail[u.Email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	u.ID = "u-" + u.Email
	f.byID[u.ID] = &u
	f.byEmail[u.Email] = &u
	return &u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	f.updated = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) ListPasswordOlderThan(_ context.Context, _ time.Time) ([]domain.User, error) {
	return nil, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingPublisher) Publish(_ context.Context, evt domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func testSvc(repo *fakeUserRepo) (*Service, *recordingPublisher) {
	pub := &recordingPublisher{}
	return New(repo, tokenstore.NewMemory(), pub, time.Hour, 24*time.Hour), pub
}

func TestSignupNormalizesEmailAndConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := testSvc(repo)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Email: "  Jo@Example.COM ", Password: "supersecret", Name: "Jo"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Email != "jo@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}

	if _, err := svc.Signup(ctx, SignupInput{Email: "jo@example.com", Password: "supersecret"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc, _ := testSvc(newFakeUserRepo())
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.c", Password: "short"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLoginIssuesWorkingAccessToken(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", Email: "jo@example.com", PasswordHash: hash(t, "supersecret")})
	svc, _ := testSvc(repo)
	ctx := context.Background()

	u, access, refresh, err := svc.Login(ctx, "jo@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != "u1" || access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected login result: %q %q", access, refresh)
	}

	userID, err := svc.Authenticate(ctx, access)
	if err != nil || userID != "u1" {
		t.Fatalf("authenticate: %v (%q)", err, userID)
	}

	// Refresh tokens must not pass as access tokens.
	if _, err := svc.Authenticate(ctx, refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", Email: "jo@example.com", PasswordHash: hash(t, "supersecret")})
	svc, _ := testSvc(repo)

	if _, _, _, err := svc.Login(context.Background(), "jo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user must look like bad credentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", Email: "jo@example.com", PasswordHash: hash(t, "supersecret")})
	svc, _ := testSvc(repo)
	ctx := context.Background()

	_, access, _, err := svc.Login(ctx, "jo@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, access); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", Email: "jo@example.com", PasswordHash: hash(t, "supersecret")})
	svc, _ := testSvc(repo)
	ctx := context.Background()

	_, access, _, err := svc.Login(ctx, "jo@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, access); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := svc.Logout(ctx, access); err != nil {
		t.Fatalf("repeated logout must succeed, got %v", err)
	}
	if err := svc.Logout(ctx, "never-issued"); err != nil {
		t.Fatalf("logout with unknown token must succeed, got %v", err)
	}
}

func TestChangePasswordPublishesEvent(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", Email: "jo@example.com", PasswordHash: hash(t, "supersecret")})
	svc, pub := testSvc(repo)
	ctx := context.Background()

	before := time.Now()
	if err := svc.ChangePassword(ctx, "u1", "supersecret", "evenmoresecret"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if repo.updated == nil || repo.updated.PasswordChangedAt.Before(before) {
		t.Fatal("password change time not stamped")
	}
	if len(pub.events) != 1 || pub.events[0].Name() != domain.PasswordUpdatedEvent {
		t.Fatalf("expected one passwordUpdated event, got %+v", pub.events)
	}

	if _, _, _, err := svc.Login(ctx, "jo@example.com", "evenmoresecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: "u1", Email: "jo@example.com", PasswordHash: hash(t, "supersecret")})
	svc, pub := testSvc(repo)

	err := svc.ChangePassword(context.Background(), "u1", "wrong", "evenmoresecret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatal("no event may fire for a rejected password change")
	}
}
