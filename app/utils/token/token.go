package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mobstermerch/storefront/app/models"
	"github.com/redis/go-redis/v9"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	refreshKeyPrefix = "refresh:"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues short-lived JWT access tokens and opaque refresh
// tokens. Refresh tokens are stored SHA-256-hashed in Redis with a TTL
// so a leaked dump never exposes usable tokens.
type Manager struct {
	secret []byte
	rdb    *redis.Client
}

func NewManager(secret string, rdb *redis.Client) *Manager {
	return &Manager{secret: []byte(secret), rdb: rdb}
}

func (m *Manager) GenerateAccessToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *Manager) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := hex.EncodeToString(raw)

	key := refreshKeyPrefix + hashToken(token)
	if err := m.rdb.Set(ctx, key, userID, RefreshTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

func (m *Manager) ResolveRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	key := refreshKeyPrefix + hashToken(refreshToken)
	userID, err := m.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return userID, nil
}

func (m *Manager) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	key := refreshKeyPrefix + hashToken(refreshToken)
	return m.rdb.Del(ctx, key).Err()
}

// RotateRefreshToken revokes the presented token and issues a fresh one
// for the same user in one step.
func (m *Manager) RotateRefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := m.ResolveRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	if err := m.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return "", "", err
	}
	newToken, err := m.IssueRefreshToken(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return userID, newToken, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
