package api

import (
	"github.com/bridgegate-labs/bridgegate/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

func (s *APIServer) handleGetRecord(c *fiber.Ctx) error {
	record, err := s.records.GetByID(c.Params("id"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(record)
}

func (s *APIServer) handleListRecords(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	var (
		records []models.BridgeRecord
		err     error
	)

	switch {
	case c.Query("caller") != "":
		records, err = s.records.ListByCaller(common.HexToAddress(c.Query("caller")).Hex(), limit, offset)
	case c.Query("token") != "":
		records, err = s.records.ListByToken(common.HexToAddress(c.Query("token")).Hex(), limit, offset)
	default:
		records, err = s.records.List(limit, offset)
	}
	if err != nil {
		return s.errorResponse(c, err)
	}

	total, err := s.records.Count()
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"records": records,
		"total":   total,
	})
}
