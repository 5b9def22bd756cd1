package services_test

import (
	"fmt"
	"testing"

	"github.com/bridgegate-labs/bridgegate/internal/models"
	"github.com/bridgegate-labs/bridgegate/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RecordServiceTestSuite struct {
	suite.Suite
	dbService services.DBService
	records   services.RecordService
}

func (suite *RecordServiceTestSuite) SetupTest() {
	dbService, err := services.NewSqliteDBService(":memory:")
	suite.Require().NoError(err)
	suite.dbService = dbService
	suite.records = services.NewRecordService(dbService.GetDB())

	// Seed an ordered log: five records from callerA, five from callerB,
	// alternating tokens.
	for i := 0; i < 10; i++ {
		caller := "0xAAA0000000000000000000000000000000000001"
		if i >= 5 {
			caller = "0xBBB0000000000000000000000000000000000002"
		}
		token := "0xCCC0000000000000000000000000000000000003"
		if i%2 == 1 {
			token = "0xDDD0000000000000000000000000000000000004"
		}
		record := models.BridgeRecord{
			RecordID:    fmt.Sprintf("0x%064d", i),
			Caller:      caller,
			Destination: "dest",
			Token:       token,
			Amount:      "100",
			ChainID:     "31337",
			BlockHeight: uint64(i + 1),
			Timestamp:   int64(1700000000 + i),
		}
		suite.Require().NoError(dbService.GetDB().Create(&record).Error)
	}
}

func (suite *RecordServiceTestSuite) TearDownTest() {
	suite.dbService.Close()
}

func (suite *RecordServiceTestSuite) TestGetByID() {
	record, err := suite.records.GetByID(fmt.Sprintf("0x%064d", 3))
	suite.Require().NoError(err)
	suite.Equal(uint64(4), record.BlockHeight)
}

func (suite *RecordServiceTestSuite) TestGetByIDNotFound() {
	_, err := suite.records.GetByID("0xunknown")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RecordServiceTestSuite) TestListOrderedByHeight() {
	records, err := suite.records.List(0, 0)
	suite.Require().NoError(err)
	suite.Require().Len(records, 10)
	for i := 1; i < len(records); i++ {
		suite.Less(records[i-1].BlockHeight, records[i].BlockHeight)
	}
}

func (suite *RecordServiceTestSuite) TestListPaging() {
	page, err := suite.records.List(3, 3)
	suite.Require().NoError(err)
	suite.Require().Len(page, 3)
	suite.Equal(uint64(4), page[0].BlockHeight)
}

func (suite *RecordServiceTestSuite) TestListByCaller() {
	records, err := suite.records.ListByCaller("0xAAA0000000000000000000000000000000000001", 0, 0)
	suite.Require().NoError(err)
	suite.Len(records, 5)
}

func (suite *RecordServiceTestSuite) TestListByToken() {
	records, err := suite.records.ListByToken("0xDDD0000000000000000000000000000000000004", 0, 0)
	suite.Require().NoError(err)
	suite.Len(records, 5)
}

func (suite *RecordServiceTestSuite) TestCount() {
	count, err := suite.records.Count()
	suite.Require().NoError(err)
	suite.Equal(int64(10), count)
}

func TestRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}
