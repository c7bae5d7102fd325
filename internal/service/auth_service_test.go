package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MockHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed:"+password
}

type MockTokenProvider struct {
	SignAccessFunc func(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, string, time.Time, error)
	ParseFunc      func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokenProvider) SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(ctx, sub, role, ttl)
	}
	return "token-" + sub.String(), uuid.NewString(), time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) ParseAndValidateAccess(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

// MockCache tracks rate-limit keys and the token blacklist in maps.
type MockCache struct {
	rateLimited map[string]bool
	blacklisted map[string]bool
}

func NewMockCache() *MockCache {
	return &MockCache{
		rateLimited: map[string]bool{},
		blacklisted: map[string]bool{},
	}
}

func (m *MockCache) SetRateLimit(_ context.Context, key string, _ time.Duration) error {
	m.rateLimited[key] = true
	return nil
}

func (m *MockCache) CheckRateLimit(_ context.Context, key string) (bool, error) {
	return m.rateLimited[key], nil
}

func (m *MockCache) BlacklistToken(_ context.Context, jti string, _ time.Duration) error {
	m.blacklisted[jti] = true
	return nil
}

func (m *MockCache) IsTokenBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.blacklisted[jti], nil
}

func (m *MockCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (m *MockCache) Get(_ context.Context, _ string) (string, error) {
	return "", errors.New("cache miss")
}

func (m *MockCache) Del(_ context.Context, _ ...string) error {
	return nil
}

func newAuthService(users *MockUserRepo, cache service.CacheClient) *service.AuthService {
	return service.NewAuthService(users, &MockHasher{}, &MockTokenProvider{}, cache, time.Hour, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	var created *models.User
	users := &MockUserRepo{
		CreateFunc: func(_ context.Context, u *models.User) error {
			u.ID = uuid.New()
			created = u
			return nil
		},
	}

	svc := newAuthService(users, nil)
	res, err := svc.Register(context.Background(), "Jane", "Jane@Example.COM", "supersecret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created == nil || created.Email != "jane@example.com" {
		t.Fatalf("email should be lowercased: %+v", created)
	}
	if created.Role != models.RoleCustomer {
		t.Fatalf("new accounts must be customers, got %s", created.Role)
	}
	if created.Password == "supersecret" {
		t.Fatalf("password must not be stored in plaintext")
	}
	if res.Token == "" || res.ExpiresAt.IsZero() {
		t.Fatalf("expected a signed token: %+v", res)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	users := &MockUserRepo{
		ExistsByEmailFunc: func(_ context.Context, email string) (bool, error) {
			return true, nil
		},
	}

	svc := newAuthService(users, nil)
	if _, err := svc.Register(context.Background(), "Jane", "jane@example.com", "supersecret"); !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "jane@example.com", Password: "hashed:supersecret", Role: models.RoleCustomer}
	users := &MockUserRepo{
		GetByEmailFunc: func(_ context.Context, email string) (*models.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, nil
		},
	}

	svc := newAuthService(users, nil)

	res, err := svc.Login(context.Background(), "JANE@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.ID != user.ID || res.Token == "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	if _, err := svc.Login(context.Background(), "jane@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "supersecret"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Login_ThrottledAfterFailure(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "jane@example.com", Password: "hashed:supersecret"}
	users := &MockUserRepo{
		GetByEmailFunc: func(_ context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	cache := NewMockCache()

	svc := newAuthService(users, cache)

	if _, err := svc.Login(context.Background(), "jane@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
	// The failed attempt set a throttle key; the next try is rejected before
	// the password is even checked.
	if _, err := svc.Login(context.Background(), "jane@example.com", "supersecret"); !errors.Is(err, service.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts got %v", err)
	}
}

func TestAuthService_LogoutBlacklistsToken(t *testing.T) {
	cache := NewMockCache()
	svc := newAuthService(&MockUserRepo{}, cache)

	claims := &service.Claims{
		UserID: uuid.New(),
		JTI:    uuid.NewString(),
		Exp:    time.Now().Add(time.Hour),
	}
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !svc.IsTokenRevoked(context.Background(), claims.JTI) {
		t.Fatalf("token should be revoked after logout")
	}

	// Expired tokens are not blacklisted; redis would reject the non-positive
	// TTL anyway.
	expired := &service.Claims{JTI: uuid.NewString(), Exp: time.Now().Add(-time.Minute)}
	if err := svc.Logout(context.Background(), expired); err != nil {
		t.Fatalf("Logout expired: %v", err)
	}
	if svc.IsTokenRevoked(context.Background(), expired.JTI) {
		t.Fatalf("expired token must not enter the blacklist")
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "jane@example.com"}
	users := &MockUserRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, nil
		},
	}

	svc := newAuthService(users, nil)

	got, err := svc.CurrentUser(customerCtx(user.ID))
	if err != nil || got.ID != user.ID {
		t.Fatalf("CurrentUser: %v %v", got, err)
	}
	if _, err := svc.CurrentUser(context.Background()); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized got %v", err)
	}
	if _, err := svc.CurrentUser(customerCtx(uuid.New())); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("deleted user expected ErrUnauthorized got %v", err)
	}
}
