package service

import (
	"errors"
	"os"
	"time"

	"crowdfund_webapp/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Session tokens live for 7 days, matching the session cookie max-age.
const tokenTTL = 7 * 24 * time.Hour

var jwtSecret []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// AuthUser is the credential payload carried inside a session token.
type AuthUser struct {
	ID      string
	Email   string
	Name    string
	IsAdmin bool
}

// GenerateJWT issues a signed session token for the user.
func GenerateJWT(u *domain.User) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"email":    u.Email,
		"name":     u.Name,
		"is_admin": u.IsAdmin,
		"exp":      time.Now().Add(tokenTTL).Unix(),
		"iat":      now,
		"nbf":      now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT verifies a session token and returns the embedded user.
// Any malformed, mis-signed or expired token yields an error, never a panic.
func ParseJWT(tokenString string) (*AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < now {
			return nil, errors.New("token expired")
		}
	}
	if nbf, ok := claims["nbf"].(float64); ok {
		if int64(nbf) > now {
			return nil, errors.New("token not valid yet")
		}
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("user_id not found")
	}

	u := &AuthUser{ID: userID}
	if v, ok := claims["email"].(string); ok {
		u.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		u.Name = v
	}
	if v, ok := claims["is_admin"].(bool); ok {
		u.IsAdmin = v
	}

	return u, nil
}
