// Package http exposes the ordering use cases as a JSON API on echo.
//
// Every route under /api/v1 requires a bearer token; the token's subject, role and
// restaurant binding become the kernel.Actor passed to the use cases. Carts are kept
// per device, identified by the X-Device-ID header.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/review"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
)

const (
	HeaderDeviceID       = "X-Device-ID"
	HeaderIdempotencyKey = "X-Idempotency-Key"
)

// Handler is a use case taking a command or query C and producing R.
type Handler[C, R any] interface {
	Handle(ctx context.Context, in C) (R, error)
}

// ClearCartHandler empties a cart and produces nothing.
type ClearCartHandler interface {
	Handle(ctx context.Context, cmd commands.ClearCartCommand) error
}

// Handlers are the use cases served by the API.
type Handlers struct {
	GetCart            Handler[queries.GetCartQuery, queries.GetCartQueryResponse]
	AddCartItem        Handler[commands.AddCartItemCommand, *cart.Cart]
	ChangeCartQuantity Handler[commands.ChangeCartItemQuantityCommand, *cart.Cart]
	SetCartItemNotes   Handler[commands.SetCartItemNotesCommand, *cart.Cart]
	RemoveCartItem     Handler[commands.RemoveCartItemCommand, *cart.Cart]
	ClearCart          ClearCartHandler

	PlaceOrder    Handler[commands.PlaceOrderCommand, *order.Order]
	GetOrder      Handler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	ListOrders    Handler[queries.ListActorOrdersQuery, []queries.OrderSummary]
	ListAvailable Handler[queries.ListAvailableOrdersQuery, []queries.OrderSummary]
	ChangeStatus  Handler[commands.ChangeOrderStatusCommand, *order.Order]
	ClaimOrder    Handler[commands.ClaimOrderCommand, *order.Order]
	ReleaseOrder  Handler[commands.ReleaseOrderCommand, *order.Order]
	SubmitReview  Handler[commands.SubmitReviewCommand, *review.Review]
}

type Server struct {
	handlers Handlers
	auth     echo.MiddlewareFunc
	validate echo.MiddlewareFunc
	logger   *slog.Logger
}

func NewServer(handlers Handlers, jwtSecret []byte, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		auth:     NewJWTMiddleware(jwtSecret),
		validate: MustOpenAPIValidator(),
		logger:   logger.With("component", "HttpServer"),
	}
}

// Register mounts every route on e. Order writes are checked against the embedded
// OpenAPI description after authentication and the role check.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", s.auth)
	customer := RequireRole(kernel.RoleCustomer)
	driver := RequireRole(kernel.RoleDriver)
	restaurant := RequireRole(kernel.RoleRestaurant)

	api.GET("/cart", s.GetCart, customer)
	api.DELETE("/cart", s.ClearCart, customer)
	api.POST("/cart/items", s.AddCartItem, customer)
	api.PATCH("/cart/items/:itemId", s.UpdateCartItem, customer)
	api.DELETE("/cart/items/:itemId", s.RemoveCartItem, customer)

	api.POST("/orders", s.PlaceOrder, customer, s.validate)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/available", s.ListAvailableOrders, driver)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus, s.validate)
	api.POST("/orders/:id/claim", s.ClaimOrder, driver)
	api.POST("/orders/:id/release", s.ReleaseOrder, driver)
	api.POST("/orders/:id/review", s.SubmitReview, customer, s.validate)
	api.GET("/orders/:id/pickup-code", s.PickupCode, restaurant)
}

// NewEcho builds the echo instance with recovery, request logging and CORS.
func (s *Server) NewEcho(allowedOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			echo.HeaderAuthorization, echo.HeaderContentType, HeaderDeviceID, HeaderIdempotencyKey,
		},
		MaxAge: int((10 * time.Minute).Seconds()),
	}).Handler))

	s.Register(e)
	return e
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
