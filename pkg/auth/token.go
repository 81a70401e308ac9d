package auth

import (
	"errors"
	"time"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/config"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const refreshTokenType = "refresh"

type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username, Role: c.Role}
}

// CreateAccessToken signs a short-lived HS512 token carrying the user
// identity and a unique jti for later invalidation.
func CreateAccessToken(user *db.User) (string, error) {
	ttl := time.Duration(config.AppConfig.Auth.AccessTTLSeconds) * time.Second
	return signToken(user, "", config.AppConfig.Auth.AccessSecret, ttl)
}

func CreateRefreshToken(user *db.User) (string, error) {
	ttl := time.Duration(config.AppConfig.Auth.RefreshTTLSeconds) * time.Second
	return signToken(user, refreshTokenType, config.AppConfig.Auth.RefreshSecret, ttl)
}

func signToken(user *db.User, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
}

// ValidateAccessToken verifies signature and expiry, rejects blacklisted
// jtis, and returns the embedded identity.
func ValidateAccessToken(tokenString string) (Identity, error) {
	claims, err := parseToken(tokenString, config.AppConfig.Auth.AccessSecret)
	if err != nil {
		return Identity{}, err
	}
	if claims.TokenType == refreshTokenType {
		return Identity{}, apperr.New(apperr.Unauthenticated, "refresh token used as access token")
	}
	if invalidated, err := isInvalidated(claims.ID); err != nil {
		return Identity{}, err
	} else if invalidated {
		return Identity{}, apperr.New(apperr.Unauthenticated, "token has been invalidated")
	}
	return claims.identity(), nil
}

// ValidateRefreshToken returns the identity plus the token's jti and
// expiry so a logout or rotation can blacklist it.
func ValidateRefreshToken(tokenString string) (Identity, *Claims, error) {
	claims, err := parseToken(tokenString, config.AppConfig.Auth.RefreshSecret)
	if err != nil {
		return Identity{}, nil, err
	}
	if claims.TokenType != refreshTokenType {
		return Identity{}, nil, apperr.New(apperr.Unauthenticated, "not a refresh token")
	}
	if invalidated, err := isInvalidated(claims.ID); err != nil {
		return Identity{}, nil, err
	} else if invalidated {
		return Identity{}, nil, apperr.New(apperr.Unauthenticated, "token has been invalidated")
	}
	return claims.identity(), claims, nil
}

// AccessClaims parses a validated access token's claims so callers can
// blacklist its jti on logout.
func AccessClaims(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.AppConfig.Auth.AccessSecret)
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.Unauthenticated, "invalid token", err)
	}
	return claims, nil
}

// InvalidateToken blacklists a jti until its natural expiry. Used on
// logout so the token cannot be replayed; the row is swept once expired.
func InvalidateToken(jti string, expiry time.Time) error {
	if jti == "" {
		return nil
	}
	token := db.InvalidatedToken{ID: jti, ExpiryTime: expiry}
	err := db.DB.Create(&token).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func isInvalidated(jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	var token db.InvalidatedToken
	err := db.DB.First(&token, "id = ?", jti).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
