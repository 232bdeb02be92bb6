package main

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/MorneNemdil/lovejoy-security-project/internal/middleware"
	"github.com/MorneNemdil/lovejoy-security-project/internal/services"

	"github.com/labstack/echo/v4"
)

func requestEvaluationHandler(evalSvc *services.EvaluationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		details := c.FormValue("details")
		contactMethod := c.FormValue("contact_method")

		// photo is optional
		var photo *multipart.FileHeader
		if fh, err := c.FormFile("photo"); err == nil {
			photo = fh
		}

		_, err := evalSvc.Submit(c.Request().Context(), claims.AccountID, details, contactMethod, photo)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required form fields"})
			case errors.Is(err, services.ErrUnsupportedFileType):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "file type not allowed"})
			default:
				return internalError(c)
			}
		}

		return c.JSON(http.StatusCreated, echo.Map{"message": "evaluation request submitted successfully"})
	}
}

func adminListRequestsHandler(evalSvc *services.EvaluationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := evalSvc.ListAll(c.Request().Context())
		if err != nil {
			return internalError(c)
		}
		return c.JSON(http.StatusOK, echo.Map{"requests": list})
	}
}

func registerEvaluationRoutes(g *echo.Group, evalSvc *services.EvaluationService, issuer *middleware.TokenIssuer) {
	protected := g.Group("")
	protected.Use(issuer.Middleware())
	protected.POST("/request-evaluation", requestEvaluationHandler(evalSvc))

	admin := g.Group("/admin")
	admin.Use(
		issuer.Middleware(),
		middleware.AdminOnly,
	)
	admin.GET("/requests", adminListRequestsHandler(evalSvc))
}
