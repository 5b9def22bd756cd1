package api

import (
	"math/big"

	"github.com/bridgegate-labs/bridgegate/internal/services"
	"github.com/bridgegate-labs/bridgegate/internal/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

type DepositRequest struct {
	Caller      string `json:"caller" validate:"required,eth_addr"`
	Token       string `json:"token" validate:"required,eth_addr"`
	Amount      string `json:"amount" validate:"required"`
	Destination string `json:"destination"`
	// AttachedFeeWei is the native currency attached to the call, decimal wei.
	AttachedFeeWei string `json:"attached_fee_wei"`
	// Signature is the caller's personal-sign signature over the canonical
	// deposit message; it proves control of the caller address.
	Signature string `json:"signature" validate:"required"`
}

func (s *APIServer) handleDeposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}
	if err := s.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "details": err.Error()})
	}

	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_amount", "details": "amount must be a decimal string"})
	}

	attached := new(big.Int)
	if req.AttachedFeeWei != "" {
		attached, ok = new(big.Int).SetString(req.AttachedFeeWei, 10)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_fee", "details": "attached_fee_wei must be a decimal string"})
		}
	}

	caller := common.HexToAddress(req.Caller)
	token := common.HexToAddress(req.Token)

	message := utils.DepositMessage(caller, token, amount, req.Destination, attached)
	verified, err := utils.VerifyPersonalSignature(message, req.Signature, caller)
	if err != nil || !verified {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	s.depositMu.Lock()
	record, err := s.gateway.Deposit(services.DepositParams{
		Caller:         caller,
		Token:          token,
		Amount:         amount,
		Destination:    req.Destination,
		AttachedFeeWei: attached,
	})
	s.depositMu.Unlock()
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}
