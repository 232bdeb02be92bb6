package main

import (
	"errors"
	"net/http"

	"github.com/MorneNemdil/lovejoy-security-project/internal/middleware"
	"github.com/MorneNemdil/lovejoy-security-project/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		_, err := authSvc.Register(c.Request().Context(), req.Name, req.Email, req.Phone, req.Password)
		if err != nil {
			var weak *services.WeakPasswordError
			switch {
			case errors.Is(err, services.ErrMissingFields):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
			case errors.As(err, &weak):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": weak.Reason})
			case errors.Is(err, services.ErrEmailInUse):
				return c.JSON(http.StatusConflict, echo.Map{"error": "email already in use"})
			default:
				return internalError(c)
			}
		}

		return c.JSON(http.StatusCreated, echo.Map{"message": "user registered successfully"})
	}
}

func loginHandler(authSvc *services.AuthService, issuer *middleware.TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		acct, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
			case errors.Is(err, services.ErrInvalidCredentials):
				// one generic message for unknown email and wrong password
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
			default:
				return internalError(c)
			}
		}

		token, err := issuer.Issue(acct.ID, acct.IsAdmin)
		if err != nil {
			return internalError(c)
		}

		return c.JSON(http.StatusOK, echo.Map{"access_token": token})
	}
}

func forgotPasswordHandler(resetSvc *services.ResetService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(forgotPasswordRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := resetSvc.RequestReset(c.Request().Context(), req.Email); err != nil {
			if errors.Is(err, services.ErrMissingFields) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
			}
			return internalError(c)
		}

		// same response whether or not the email is registered
		return c.JSON(http.StatusOK, echo.Map{
			"message": "if your email is registered, you will receive a password reset link",
		})
	}
}

func resetPasswordHandler(resetSvc *services.ResetService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resetPasswordRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		err := resetSvc.ConsumeReset(c.Request().Context(), req.Token, req.NewPassword)
		if err != nil {
			var weak *services.WeakPasswordError
			switch {
			case errors.Is(err, services.ErrMissingFields):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "token and new password are required"})
			case errors.Is(err, services.ErrInvalidToken):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token"})
			case errors.Is(err, services.ErrTokenExpired):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "token has expired"})
			case errors.As(err, &weak):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": weak.Reason})
			default:
				return internalError(c)
			}
		}

		return c.JSON(http.StatusOK, echo.Map{"message": "password has been reset successfully"})
	}
}

func profileHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		acct, err := authSvc.Profile(c.Request().Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, services.ErrAccountNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return internalError(c)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"id":    acct.ID,
			"email": acct.Email,
			"name":  acct.Name,
		})
	}
}

// internalError hides internal detail from the caller; the cause is
// already in the server log via the Recover/Logger middleware.
func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an internal error occurred"})
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, resetSvc *services.ResetService, issuer *middleware.TokenIssuer) {
	// public
	g.POST("/register", registerHandler(authSvc))
	g.POST("/login", loginHandler(authSvc, issuer))
	g.POST("/forgot-password", forgotPasswordHandler(resetSvc))
	g.POST("/reset-password", resetPasswordHandler(resetSvc))

	// authenticated
	protected := g.Group("")
	protected.Use(issuer.Middleware())
	protected.GET("/profile", profileHandler(authSvc))
}
