package api

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/bridgegate-labs/bridgegate/internal/api/middleware"
	"github.com/bridgegate-labs/bridgegate/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

type APIServer struct {
	app       *fiber.App
	gateway   services.GatewayService
	records   services.RecordService
	validator *validator.Validate
	jwtSecret string
	// depositMu serializes top-level deposit calls the way the hosting
	// ledger serializes transactions. Re-entry from inside ledger callbacks
	// bypasses it and is rejected by the gateway's guard.
	depositMu sync.Mutex
}

func NewAPIServer(gateway services.GatewayService, records services.RecordService, jwtSecret string) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Add middleware
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	server := &APIServer{
		app:       app,
		gateway:   gateway,
		records:   records,
		validator: validator.New(),
		jwtSecret: jwtSecret,
	}
	server.setupRoutes()
	return server
}

func (s *APIServer) setupRoutes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := s.app.Group("/api/v1")

	v1.Post("/deposit", s.handleDeposit)

	v1.Get("/records", s.handleListRecords)
	v1.Get("/records/:id", s.handleGetRecord)

	admin := v1.Group("/admin", middleware.AuthMiddleware(middleware.AuthConfig{Secret: s.jwtSecret}))
	admin.Get("/settings", s.handleGetSettings)
	admin.Post("/pause", s.handleSetPaused)
	admin.Get("/tokens", s.handleListTokens)
	admin.Post("/tokens", s.handleAddToken)
	admin.Delete("/tokens", s.handleRemoveToken)
	admin.Post("/fee", s.handleSetBridgeFee)
	admin.Post("/fee-receiver", s.handleSetFeeReceiver)
	admin.Post("/relayer", s.handleSetRelayer)
}

// Start begins listening on the given port. Port 0 picks a free port; the
// chosen one is returned.
func (s *APIServer) Start(port int) (int, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("failed to listen: %w", err)
	}

	chosen := listener.Addr().(*net.TCPAddr).Port
	go func() {
		_ = s.app.Listener(listener)
	}()
	return chosen, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process testing.
func (s *APIServer) App() *fiber.App {
	return s.app
}

// errorResponse maps the gateway error taxonomy onto distinct HTTP statuses
// and stable error codes.
func (s *APIServer) errorResponse(c *fiber.Ctx, err error) error {
	type mapping struct {
		status int
		code   string
	}

	for target, m := range map[error]mapping{
		services.ErrInvalidAmount:      {fiber.StatusBadRequest, "invalid_amount"},
		services.ErrTokenNotSupported:  {fiber.StatusUnprocessableEntity, "token_not_supported"},
		services.ErrInvalidDestination: {fiber.StatusBadRequest, "invalid_destination"},
		services.ErrInsufficientFee:    {fiber.StatusPaymentRequired, "insufficient_fee"},
		services.ErrPaused:             {fiber.StatusServiceUnavailable, "paused"},
		services.ErrReentrancy:         {fiber.StatusConflict, "reentrancy"},
		services.ErrUnauthorized:       {fiber.StatusForbidden, "unauthorized"},
		services.ErrZeroAddress:        {fiber.StatusBadRequest, "zero_address"},
	} {
		if errors.Is(err, target) {
			return c.Status(m.status).JSON(fiber.Map{"error": m.code, "details": err.Error()})
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error":   "external_call_failed",
		"details": err.Error(),
	})
}
