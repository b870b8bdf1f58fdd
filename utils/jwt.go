package utils

import (
	"errors"
	"time"

	"hotelops/config"

	"github.com/golang-jwt/jwt"
)

// StaffClaims identifies a staff member and the capabilities they hold.
type StaffClaims struct {
	Caps []string `json:"caps"`
	jwt.StandardClaims
}

func secretKey() ([]byte, error) {
	if config.AppConfig.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	return []byte(config.AppConfig.JWTSecret), nil
}

// GenerateStaffToken creates a signed JWT for a staff member. The token expires
// after the specified duration.
func GenerateStaffToken(staffID string, caps []string, duration time.Duration) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := StaffClaims{
		Caps: caps,
		StandardClaims: jwt.StandardClaims{
			Subject:   staffID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseStaffToken validates a token string and returns its claims.
func ParseStaffToken(tokenString string) (*StaffClaims, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	return claims, nil
}
