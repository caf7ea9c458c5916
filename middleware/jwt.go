package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"lms/config"
)

// Token lifetimes. Access tokens are short-lived; refresh tokens live a
// week and are never rotated — refresh only mints a new access token.
const (
	AccessTokenLifetime  = 60 * time.Minute
	RefreshTokenLifetime = 7 * 24 * time.Hour
)

// GenerateAccessToken generates a short-lived access token for the user
func GenerateAccessToken(userID uint, username string, isSuperuser bool) (string, error) {
	return signToken(jwt.MapClaims{
		"typ":          "access",
		"userId":       userID,
		"username":     username,
		"is_superuser": isSuperuser,
		"iat":          time.Now().Unix(),
		"exp":          time.Now().Add(AccessTokenLifetime).Unix(),
	})
}

// GenerateRefreshToken generates a refresh token with a unique jti so it
// can be blacklisted at logout
func GenerateRefreshToken(userID uint) (string, error) {
	return signToken(jwt.MapClaims{
		"typ":    "refresh",
		"userId": userID,
		"jti":    uuid.NewString(),
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(RefreshTokenLifetime).Unix(),
	})
}

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseToken parses and validates a signed token, returning its claims
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token payload")
	}
	return claims, nil
}

// JWTMiddleware is a middleware to check for a valid access token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	claims, err := ParseToken(authHeader[len("Bearer "):])
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	// Refresh tokens must not be used to access resources
	if typ, _ := claims["typ"].(string); typ != "access" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token type", nil)
	}

	userID, ok := claims["userId"].(float64) // JWT number claims decode as float64
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	c.Locals("userId", uint(userID))
	if isSuper, ok := claims["is_superuser"].(bool); ok {
		c.Locals("isSuperuser", isSuper)
	}

	// If valid, continue to the next handler
	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
