package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
)

// RequireAdmin guards the back-office routes with a Bearer JWT carrying
// role=admin, signed with the configured shared secret.
func RequireAdmin(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if strings.TrimSpace(secret) == "" {
				return ctx.JSON(http.StatusServiceUnavailable, &types.ErrorResponse{Error: "admin auth is not configured"})
			}

			tokenString, err := extractBearerToken(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, &types.ErrorResponse{Error: err.Error()})
			}

			claims := jwt.MapClaims{}
			_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, &types.ErrorResponse{Error: "invalid token"})
			}

			role, _ := claims["role"].(string)
			if role != "admin" {
				return ctx.JSON(http.StatusForbidden, &types.ErrorResponse{Error: "admin role required"})
			}

			ctx.Set("admin_subject", claims["sub"])
			return next(ctx)
		}
	}
}

func extractBearerToken(ctx echo.Context) (string, error) {
	header := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderAuthorization))
	if header == "" {
		return "", errors.New("authorization header is required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("bearer token is required")
	}
	return strings.TrimSpace(parts[1]), nil
}
