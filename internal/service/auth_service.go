package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/maktabhq/maktab-backend/internal/config"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence surface AuthService needs.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService handles registration, login, and the bearer token relation.
//
// Tokens are opaque strings stored in Redis as token → user id, with a
// per-user set of outstanding tokens so logout can revoke all of them at
// once. Keeping the relation out of process memory means tokens survive
// restarts and are shared across instances.
type AuthService struct {
	cfg   *config.Config
	users UserStore
	rdb   *redis.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users UserStore, rdb *redis.Client) *AuthService {
	return &AuthService{cfg: cfg, users: users, rdb: rdb}
}

// Register creates a user with a bcrypt password hash.
// Returns ErrDuplicateName if the email is already taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a new opaque bearer token.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// issueToken stores a fresh token for the user. The token key and the
// per-user set are written in one transactional pipeline so a concurrent
// logout cannot observe the token without its set membership.
func (s *AuthService) issueToken(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, config.CacheKey.BearerTokenKey(token), strconv.FormatInt(userID, 10), s.cfg.TokenTTL)
		pipe.SAdd(ctx, config.CacheKey.UserTokensKey(userID), token)
		if s.cfg.TokenTTL > 0 {
			pipe.Expire(ctx, config.CacheKey.UserTokensKey(userID), s.cfg.TokenTTL)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// ResolveToken returns the user ID a bearer token was issued to, or
// ErrInvalidCredentials if the token is unknown or revoked.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (int64, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.BearerTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("resolve token: %w", err)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token owner: %w", err)
	}
	return userID, nil
}

// RevokeAllTokens deletes every outstanding token issued to the user
// (logout invalidates all sessions, not just the caller's).
//
// The set is read and deleted under WATCH: a login that adds a token after
// the read aborts the transaction, and the revoke retries against the fresh
// set. Without this, a concurrent login could keep a resolvable token whose
// set membership was wiped, leaving it unrevocable forever.
func (s *AuthService) RevokeAllTokens(ctx context.Context, userID int64) error {
	setKey := config.CacheKey.UserTokensKey(userID)

	revoke := func(tx *redis.Tx) error {
		tokens, err := tx.SMembers(ctx, setKey).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, t := range tokens {
				pipe.Del(ctx, config.CacheKey.BearerTokenKey(t))
			}
			pipe.Del(ctx, setKey)
			return nil
		})
		return err
	}

	for {
		err := s.rdb.Watch(ctx, revoke, setKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("revoke tokens: %w", err)
	}
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
