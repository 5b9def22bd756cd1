package ledger_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/bridgegate-labs/bridgegate/internal/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
)

var (
	token = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	alice = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b02")
)

type SimLedgerTestSuite struct {
	suite.Suite
	ledger *ledger.SimLedger
}

func (suite *SimLedgerTestSuite) SetupTest() {
	suite.ledger = ledger.NewSimLedger()
}

func (suite *SimLedgerTestSuite) TestTransferInMovesBalance() {
	suite.ledger.Mint(token, alice, big.NewInt(100))

	err := suite.ledger.TransferIn(token, alice, bob, big.NewInt(60))
	suite.Require().NoError(err)
	suite.Equal(big.NewInt(40), suite.ledger.BalanceOf(token, alice))
	suite.Equal(big.NewInt(60), suite.ledger.BalanceOf(token, bob))
}

func (suite *SimLedgerTestSuite) TestTransferInInsufficientBalance() {
	suite.ledger.Mint(token, alice, big.NewInt(10))

	err := suite.ledger.TransferIn(token, alice, bob, big.NewInt(60))
	suite.ErrorIs(err, ledger.ErrInsufficientBalance)
	suite.Equal(big.NewInt(10), suite.ledger.BalanceOf(token, alice))
}

func (suite *SimLedgerTestSuite) TestBurnReducesSupply() {
	suite.ledger.Mint(token, alice, big.NewInt(100))

	err := suite.ledger.Burn(token, alice, big.NewInt(30))
	suite.Require().NoError(err)
	suite.Equal(big.NewInt(70), suite.ledger.BalanceOf(token, alice))
	suite.Equal(big.NewInt(30), suite.ledger.TotalBurned(token))
}

func (suite *SimLedgerTestSuite) TestNativeTransfer() {
	suite.ledger.MintNative(alice, big.NewInt(500))

	suite.Require().NoError(suite.ledger.Transfer(alice, bob, big.NewInt(200)))
	suite.Equal(big.NewInt(300), suite.ledger.NativeBalanceOf(alice))
	suite.Equal(big.NewInt(200), suite.ledger.NativeBalanceOf(bob))

	err := suite.ledger.Transfer(alice, bob, big.NewInt(10_000))
	suite.ErrorIs(err, ledger.ErrInsufficientBalance)
}

func (suite *SimLedgerTestSuite) TestSnapshotRevert() {
	suite.ledger.Mint(token, alice, big.NewInt(100))
	suite.ledger.MintNative(alice, big.NewInt(50))

	snap := suite.ledger.Snapshot()

	suite.Require().NoError(suite.ledger.TransferIn(token, alice, bob, big.NewInt(100)))
	suite.Require().NoError(suite.ledger.Burn(token, bob, big.NewInt(100)))
	suite.Require().NoError(suite.ledger.Transfer(alice, bob, big.NewInt(50)))

	suite.ledger.RevertToSnapshot(snap)

	suite.Equal(big.NewInt(100), suite.ledger.BalanceOf(token, alice))
	suite.Zero(suite.ledger.BalanceOf(token, bob).Sign())
	suite.Zero(suite.ledger.TotalBurned(token).Sign())
	suite.Equal(big.NewInt(50), suite.ledger.NativeBalanceOf(alice))
}

func (suite *SimLedgerTestSuite) TestHooksRejectOperations() {
	suite.ledger.Mint(token, alice, big.NewInt(100))

	hookErr := errors.New("token contract reverted")
	suite.ledger.TransferInHook = func(_, _, _ common.Address, _ *big.Int) error {
		return hookErr
	}
	err := suite.ledger.TransferIn(token, alice, bob, big.NewInt(10))
	suite.ErrorIs(err, ledger.ErrTransferRejected)
	suite.Equal(big.NewInt(100), suite.ledger.BalanceOf(token, alice))

	suite.ledger.BurnHook = func(_, _ common.Address, _ *big.Int) error {
		return hookErr
	}
	err = suite.ledger.Burn(token, alice, big.NewInt(10))
	suite.ErrorIs(err, ledger.ErrBurnRejected)
	suite.Equal(big.NewInt(100), suite.ledger.BalanceOf(token, alice))
}

func TestSimLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(SimLedgerTestSuite))
}
