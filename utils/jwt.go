package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RedisClient is an optional shared Redis client used for token revocation and
// login-lockout counters. It will be nil when REDIS_ADDR is not configured.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		// don't fail startup for redis issues; revocation falls back to DB
		return
	}
	RedisClient = rc
}

type contextKey string

const UserIDKey = contextKey("userID")
const UserRoleKey = contextKey("userRole")
const AdminIDKey = contextKey("adminID")
const RequestIDKey = contextKey("requestID")

// GetUserID extracts the authenticated user id placed in the request context
// by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}

// GetAdminID extracts the authenticated admin id placed in the request context
// by the admin auth middleware.
func GetAdminID(r *http.Request) (int64, bool) {
	v := r.Context().Value(AdminIDKey)
	id, ok := v.(int64)
	return id, ok
}

func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateAccessToken issues a short-lived access token (default 15 minutes).
func GenerateAccessToken(id int64, role string) (string, error) {
	return GenerateAccessTokenWithExpiry(id, role, 15*time.Minute)
}

// GenerateAccessTokenWithExpiry issues an access token with custom expiry duration
func GenerateAccessTokenWithExpiry(id int64, role string, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(16)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
		"aud":  os.Getenv("JWT_AUD"),
		"iss":  os.Getenv("JWT_ISS"),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken creates a refresh token, stores it in DB and returns the opaque token string (the jti)
func GenerateRefreshToken(userID uint) (string, error) {
	if database.DB == nil {
		return "", errors.New("database not initialized")
	}
	return GenerateRefreshTokenTx(database.DB, userID)
}

// GenerateRefreshTokenTx stores the new token on the caller's transaction, so
// rotation can revoke the old token and mint the new one atomically.
func GenerateRefreshTokenTx(tx *gorm.DB, userID uint) (string, error) {
	rt, err := models.NewRefreshToken(userID, 7) // 7 days
	if err != nil {
		return "", err
	}
	if err := tx.Create(rt).Error; err != nil {
		return "", err
	}
	return rt.ID, nil
}

// ValidateRefreshToken looks up the opaque refresh token and returns its owner.
func ValidateRefreshToken(tokenStr string) (*models.RefreshToken, error) {
	if database.DB == nil {
		return nil, errors.New("database not initialized")
	}
	var rt models.RefreshToken
	if err := database.DB.Where("id = ?", tokenStr).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, err
	}
	if !rt.Usable() {
		return nil, errors.New("refresh token expired or revoked")
	}
	return &rt, nil
}

// RevokeRefreshToken marks a refresh token revoked (logout).
func RevokeRefreshToken(tokenStr string) error {
	if database.DB == nil {
		return errors.New("database not initialized")
	}
	return database.DB.Model(&models.RefreshToken{}).Where("id = ?", tokenStr).Update("revoked", true).Error
}

// RevokeAllRefreshTokens revokes every refresh token for a user (logout-all).
func RevokeAllRefreshTokens(userID uint) error {
	if database.DB == nil {
		return errors.New("database not initialized")
	}
	return database.DB.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Update("revoked", true).Error
}

// RevokeAccessToken blacklists an access token's jti until its expiry.
// Best-effort: a nil Redis client means no cross-process revocation store.
func RevokeAccessToken(jti string, ttl time.Duration) {
	if RedisClient == nil || jti == "" || ttl <= 0 {
		return
	}
	_ = RedisClient.Set(context.Background(), "revoked:"+jti, "1", ttl).Err()
}

func isAccessTokenRevoked(jti string) bool {
	if RedisClient == nil || jti == "" {
		return false
	}
	n, err := RedisClient.Exists(context.Background(), "revoked:"+jti).Result()
	return err == nil && n > 0
}

// ValidateAccessToken parses and validates the access token, checking
// signature, exp/nbf, aud/iss when configured, and the jti revocation store.
func ValidateAccessToken(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 algorithm to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, nil, errors.New("token expired")
		}
		return nil, nil, errors.New("invalid token")
	}
	if !token.Valid {
		return nil, nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return token, nil, errors.New("invalid claims")
	}

	if aud := os.Getenv("JWT_AUD"); aud != "" {
		if got, _ := claims["aud"].(string); got != aud {
			return token, nil, errors.New("invalid audience")
		}
	}
	if iss := os.Getenv("JWT_ISS"); iss != "" {
		if got, _ := claims["iss"].(string); got != iss {
			return token, nil, errors.New("invalid issuer")
		}
	}

	if jti, _ := claims["jti"].(string); isAccessTokenRevoked(jti) {
		return token, nil, errors.New("token revoked")
	}

	return token, claims, nil
}

// ClaimID extracts the numeric "id" claim, tolerating the float64 that
// encoding/json produces and strings from older tokens.
func ClaimID(claims jwt.MapClaims) int64 {
	switch v := claims["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		var n int64
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}
