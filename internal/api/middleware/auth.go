package middleware

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// CallerAddressKey is the fiber locals key under which the authenticated
// caller address is stored.
const CallerAddressKey = "callerAddress"

// AuthConfig holds configuration for the admin auth middleware
type AuthConfig struct {
	// Secret is the HS256 signing secret of self-issued admin tokens.
	Secret string
}

// AuthMiddleware returns a Fiber middleware for Bearer token authentication.
// The token subject must be the caller's Ethereum address; authorization
// against the gateway owner happens in the service layer.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if token == "" {
			c.Set("WWW-Authenticate", `Bearer realm="Access to protected resource"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid Bearer token",
			})
		}

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !parsed.Valid {
			c.Set("WWW-Authenticate", `Bearer realm="Access to protected resource"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		if !common.IsHexAddress(claims.Subject) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token subject is not a valid address",
			})
		}

		c.Locals(CallerAddressKey, common.HexToAddress(claims.Subject))
		return c.Next()
	}
}

// IssueToken signs an HS256 token whose subject is the given address. Used by
// local tooling and tests.
func IssueToken(secret string, subject common.Address, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = subject.Hex()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
