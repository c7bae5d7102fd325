package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"

	"go.uber.org/zap"
)

const loginThrottleTTL = 3 * time.Second

type AuthService struct {
	users  repository.UserRepo
	hasher PasswordHasher
	tokens TokenProvider
	cache  CacheClient // nil disables throttling and the logout blacklist

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

func NewAuthService(users repository.UserRepo, hasher PasswordHasher, tokens TokenProvider, cache CacheClient, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		cache:     cache,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, _, exp, err := s.tokens.SignAccess(ctx, u.ID, string(u.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()))

	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if s.cache != nil {
		throttled, err := s.cache.CheckRateLimit(ctx, loginThrottleKey(email))
		if err == nil && throttled {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		if s.cache != nil {
			_ = s.cache.SetRateLimit(ctx, loginThrottleKey(email), loginThrottleTTL)
		}
		return nil, ErrInvalidCredentials
	}

	token, _, exp, err := s.tokens.SignAccess(ctx, user.ID, string(user.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Logout blacklists the access token until its natural expiry. Without redis
// the token simply keeps working until then; the session is stateless.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if s.cache == nil {
		return nil
	}
	ttl := time.Until(claims.Exp)
	if ttl <= 0 {
		return nil
	}
	return s.cache.BlacklistToken(ctx, claims.JTI, ttl)
}

func (s *AuthService) IsTokenRevoked(ctx context.Context, jti string) bool {
	if s.cache == nil {
		return false
	}
	revoked, err := s.cache.IsTokenBlacklisted(ctx, jti)
	if err != nil {
		s.log.Warn("blacklist lookup failed", zap.Error(err))
		return false
	}
	return revoked
}

func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}

func loginThrottleKey(email string) string {
	return fmt.Sprintf("login:%s", email)
}
