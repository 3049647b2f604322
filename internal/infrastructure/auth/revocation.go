package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/compras/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RevocationList checks whether sessions revoked at the identity provider
// should still be honored here. The provider pushes revocations into the
// shared Redis instance; this application only reads them.
type RevocationList interface {
	// IsRevoked reports whether the session token id has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// IsUserRevoked reports whether all of a user's sessions issued at or
	// before the stored cutoff have been revoked.
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisRevocationList implements RevocationList using Redis
type RedisRevocationList struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRevocationList creates a revocation list backed by Redis
func NewRedisRevocationList(cfg config.RedisConfig) (*RedisRevocationList, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for session revocation list: %w", err)
	}

	return &RedisRevocationList{
		client:    client,
		keyPrefix: "sesion:revocada:",
	}, nil
}

// NewRedisRevocationListWithClient wraps an existing Redis client
func NewRedisRevocationListWithClient(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{
		client:    client,
		keyPrefix: "sesion:revocada:",
	}
}

func (l *RedisRevocationList) jtiKey(jti string) string {
	return l.keyPrefix + "jti:" + jti
}

func (l *RedisRevocationList) userKey(userID string) string {
	return l.keyPrefix + "usuario:" + userID
}

// IsRevoked checks the per-token revocation key
func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := l.client.Exists(ctx, l.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return exists > 0, nil
}

// IsUserRevoked checks the per-user revocation cutoff
func (l *RedisRevocationList) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	cutoffStr, err := l.client.Get(ctx, l.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user session revocation: %w", err)
	}

	var cutoff int64
	if _, err := fmt.Sscanf(cutoffStr, "%d", &cutoff); err != nil {
		return false, fmt.Errorf("failed to parse revocation cutoff: %w", err)
	}
	return issuedAt.Unix() <= cutoff, nil
}

// Close closes the Redis client
func (l *RedisRevocationList) Close() error {
	return l.client.Close()
}

var _ RevocationList = (*RedisRevocationList)(nil)

// InMemoryRevocationList provides an in-memory implementation for
// development and tests. Not suitable for multiple instances.
type InMemoryRevocationList struct {
	mu      sync.RWMutex
	jtis    map[string]struct{}
	cutoffs map[string]time.Time
}

// NewInMemoryRevocationList creates a new in-memory revocation list
func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{
		jtis:    make(map[string]struct{}),
		cutoffs: make(map[string]time.Time),
	}
}

// Revoke marks a single session token as revoked
func (l *InMemoryRevocationList) Revoke(jti string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jtis[jti] = struct{}{}
}

// RevokeUser sets the revocation cutoff for a user to now
func (l *InMemoryRevocationList) RevokeUser(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cutoffs[userID] = time.Now()
}

// IsRevoked implements RevocationList
func (l *InMemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, revoked := l.jtis[jti]
	return revoked, nil
}

// IsUserRevoked implements RevocationList
func (l *InMemoryRevocationList) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cutoff, exists := l.cutoffs[userID]
	if !exists {
		return false, nil
	}
	return issuedAt.UnixNano() <= cutoff.UnixNano(), nil
}

var _ RevocationList = (*InMemoryRevocationList)(nil)
