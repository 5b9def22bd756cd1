package api

import (
	"math/big"

	"github.com/bridgegate-labs/bridgegate/internal/api/middleware"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

// adminCaller reads the authenticated address set by the auth middleware.
func adminCaller(c *fiber.Ctx) common.Address {
	addr, _ := c.Locals(middleware.CallerAddressKey).(common.Address)
	return addr
}

type SetPausedRequest struct {
	Paused bool `json:"paused"`
}

func (s *APIServer) handleSetPaused(c *fiber.Ctx) error {
	var req SetPausedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}

	if err := s.gateway.SetPaused(adminCaller(c), req.Paused); err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"paused": req.Paused})
}

func (s *APIServer) handleGetSettings(c *fiber.Ctx) error {
	return c.JSON(s.gateway.Settings())
}

type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (s *APIServer) handleAddToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}
	if err := s.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}

	if err := s.gateway.AddSupportedToken(adminCaller(c), common.HexToAddress(req.Token)); err != nil {
		return s.errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": common.HexToAddress(req.Token).Hex()})
}

func (s *APIServer) handleRemoveToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}
	if err := s.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}

	if err := s.gateway.RemoveSupportedToken(adminCaller(c), common.HexToAddress(req.Token)); err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"token": common.HexToAddress(req.Token).Hex()})
}

func (s *APIServer) handleListTokens(c *fiber.Ctx) error {
	tokens, err := s.gateway.ListSupportedTokens()
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"tokens": tokens})
}

type SetBridgeFeeRequest struct {
	AmountWei string `json:"amount_wei" validate:"required"`
}

func (s *APIServer) handleSetBridgeFee(c *fiber.Ctx) error {
	var req SetBridgeFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}
	if err := s.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}

	amount, ok := new(big.Int).SetString(req.AmountWei, 10)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_amount", "details": "amount_wei must be a decimal string"})
	}

	if err := s.gateway.SetBridgeFeeWei(adminCaller(c), amount); err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"amount_wei": amount.String()})
}

type SetFeeReceiverRequest struct {
	// Receiver may be empty or the zero address to disable fee forwarding.
	Receiver string `json:"receiver"`
}

func (s *APIServer) handleSetFeeReceiver(c *fiber.Ctx) error {
	var req SetFeeReceiverRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}

	if err := s.gateway.SetFeeReceiver(adminCaller(c), common.HexToAddress(req.Receiver)); err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"receiver": req.Receiver})
}

type SetRelayerRequest struct {
	Relayer string `json:"relayer"`
}

func (s *APIServer) handleSetRelayer(c *fiber.Ctx) error {
	var req SetRelayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}

	if err := s.gateway.SetRelayer(adminCaller(c), common.HexToAddress(req.Relayer)); err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"relayer": req.Relayer})
}
