package http

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Claims is the bearer token payload. Subject carries the actor id; restaurant staff
// also carry the restaurant they work at.
type Claims struct {
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	jwt.RegisteredClaims
}

// ActorFromClaims validates the claims and converts them into an actor.
func ActorFromClaims(claims *Claims) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}

	var restaurantID *kernel.UUID
	if role == kernel.RoleRestaurant {
		if claims.RestaurantID == "" {
			return kernel.Actor{}, errors.New("restaurant staff token without restaurant_id")
		}
		rid, err := kernel.UUIDFromString(claims.RestaurantID)
		if err != nil {
			return kernel.Actor{}, err
		}
		restaurantID = &rid
	}

	return kernel.NewActor(id, role, restaurantID)
}

// NewJWTMiddleware authenticates HS256 bearer tokens and stores the actor in the echo
// context.
func NewJWTMiddleware(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, raw, ok := strings.Cut(authz, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				return unauthorized(c, "missing bearer token")
			}

			claims := &Claims{}
			token, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, keyFunc)
			if err != nil || !token.Valid {
				return unauthorized(c, "invalid or expired token")
			}

			actor, err := ActorFromClaims(claims)
			if err != nil {
				return unauthorized(c, "token does not identify an actor")
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// RequireRole rejects actors whose role is not listed.
func RequireRole(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := actorFrom(c)
			if !ok {
				return unauthorized(c, "missing bearer token")
			}
			if !slices.Contains(roles, actor.Role()) {
				return c.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Message: "this action is not available to " + actor.Role().String() + " accounts",
				})
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: http.StatusUnauthorized, Message: msg})
}
