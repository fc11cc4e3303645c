package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"projecthub/internal/core/port"
)

// JWT signs the access/refresh pair with HS256. Access and refresh use
// separate secrets so leaking one does not compromise the other.
type JWT struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

func NewJWT(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *JWT {
	if accessExpiry <= 0 {
		accessExpiry = 15 * time.Minute
	}

	if refreshExpiry <= 0 {
		refreshExpiry = 7 * 24 * time.Hour
	}

	return &JWT{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
	}
}

func (j *JWT) GenerateAccessToken(userId int, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"email":   email,
		"exp":     time.Now().Add(j.AccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	})

	return token.SignedString([]byte(j.AccessSecret))
}

func (j *JWT) GenerateRefreshToken(userId int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(j.RefreshExpiry).Unix(),
		"iat":     time.Now().Unix(),
	})

	return token.SignedString([]byte(j.RefreshSecret))
}

func (j *JWT) VerifyAccessToken(tokenString string) (*port.AccessTokenPayload, error) {
	claims, err := verify(tokenString, j.AccessSecret)

	if err != nil {
		return nil, err
	}

	userId, ok := claims["user_id"].(float64)

	if !ok {
		return nil, fmt.Errorf("invalid access token claims")
	}

	email, _ := claims["email"].(string)

	return &port.AccessTokenPayload{
		UserID: int(userId),
		Email:  email,
	}, nil
}

func (j *JWT) VerifyRefreshToken(tokenString string) (*port.RefreshTokenPayload, error) {
	claims, err := verify(tokenString, j.RefreshSecret)

	if err != nil {
		return nil, err
	}

	userId, ok := claims["user_id"].(float64)

	if !ok {
		return nil, fmt.Errorf("invalid refresh token claims")
	}

	return &port.RefreshTokenPayload{UserID: int(userId)}, nil
}

func verify(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
