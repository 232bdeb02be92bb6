package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Claims defines the JWT payload structure.
type Claims struct {
	AccountID int64 `json:"account_id"`
	IsAdmin   bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens with a process-wide
// secret handed in at construction. No package-level key state.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

func NewTokenIssuer(secret []byte, ttl time.Duration, log *zap.Logger) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, log: log}
}

// Issue creates a signed token carrying the account id and admin claim.
func (ti *TokenIssuer) Issue(accountID int64, isAdmin bool) (string, error) {
	claims := &Claims{
		AccountID: accountID,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ti.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "lovejoy-api",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(ti.secret)
}

// Parse verifies a token string. Bad signature, malformed input and
// expired tokens all come back as a plain error; the reason is for logs
// only, never for the response body.
func (ti *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Middleware validates the Authorization header and attaches claims to
// the request context.
func (ti *TokenIssuer) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}
			claims, err := ti.Parse(parts[1])
			if err != nil {
				ti.log.Warn("rejected token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set("auth_claims", claims)
			return next(c)
		}
	}
}

// GetClaims extracts claims attached by Middleware.
func GetClaims(c echo.Context) *Claims {
	v := c.Get("auth_claims")
	if v == nil {
		return nil
	}
	if cl, ok := v.(*Claims); ok {
		return cl
	}
	return nil
}

// AdminOnly requires the is_admin claim. The role check runs before any
// handler logic.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admins only"})
		}
		return next(c)
	}
}
