package security

import (
	"errors"
	"time"
	"todo_api/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Two token classes signed with distinct keys: leaking one key cannot
// forge tokens of the other class.
var (
	AccessAuth  *jwtauth.JWTAuth
	RefreshAuth *jwtauth.JWTAuth
)

func InitJWT() {
	AccessAuth = jwtauth.New("HS256", config.AppConfig.AccessTokenKey, nil)
	RefreshAuth = jwtauth.New("HS256", config.AppConfig.RefreshTokenKey, nil)
}

// GenerateAccessToken issues a short-lived token carrying identity and role.
func GenerateAccessToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(config.AppConfig.AccessTokenExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := AccessAuth.Encode(claims)
	return tokenString, err
}

// GenerateRefreshToken issues a long-lived token carrying identity only.
func GenerateRefreshToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(config.AppConfig.RefreshTokenExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := RefreshAuth.Encode(claims)
	return tokenString, err
}

// VerifyRefreshToken validates a refresh token and returns the user ID it
// was issued for. Expired, forged and access-class tokens all fail here.
func VerifyRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(RefreshAuth, tokenString)
	if err != nil {
		return "", err
	}
	id, ok := token.Get("user_id")
	if !ok {
		return "", errors.New("user_id claim is missing")
	}
	userID, ok := id.(string)
	if !ok {
		return "", errors.New("user_id claim is not a string")
	}
	return userID, nil
}

// Helper functions to extract claims, used by the auth middleware
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
