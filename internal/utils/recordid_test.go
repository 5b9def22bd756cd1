package utils

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRecordIDDeterministic(t *testing.T) {
	chainID := big.NewInt(1)
	caller := common.HexToAddress("0x1111111111111111111111111111111111111111")
	token := common.HexToAddress("0x2222222222222222222222222222222222222222")
	amount := big.NewInt(1_000_000)

	a := DeriveRecordID(chainID, 100, caller, token, amount, 1700000000)
	b := DeriveRecordID(chainID, 100, caller, token, amount, 1700000000)
	assert.Equal(t, a, b)
}

func TestDeriveRecordIDSensitivity(t *testing.T) {
	chainID := big.NewInt(1)
	caller := common.HexToAddress("0x1111111111111111111111111111111111111111")
	token := common.HexToAddress("0x2222222222222222222222222222222222222222")
	amount := big.NewInt(1_000_000)

	base := DeriveRecordID(chainID, 100, caller, token, amount, 1700000000)

	assert.NotEqual(t, base, DeriveRecordID(big.NewInt(2), 100, caller, token, amount, 1700000000))
	assert.NotEqual(t, base, DeriveRecordID(chainID, 101, caller, token, amount, 1700000000))
	assert.NotEqual(t, base, DeriveRecordID(chainID, 100, token, caller, amount, 1700000000))
	assert.NotEqual(t, base, DeriveRecordID(chainID, 100, caller, token, big.NewInt(1_000_001), 1700000000))
	assert.NotEqual(t, base, DeriveRecordID(chainID, 100, caller, token, amount, 1700000001))
}

func TestDeriveRecordIDNoFieldCollision(t *testing.T) {
	// Fixed-width encoding keeps adjacent fields from bleeding into each
	// other: shifting value between chain id and height must change the id.
	caller := common.HexToAddress("0x1111111111111111111111111111111111111111")
	token := common.HexToAddress("0x2222222222222222222222222222222222222222")

	a := DeriveRecordID(big.NewInt(0x0100), 0, caller, token, big.NewInt(1), 0)
	b := DeriveRecordID(big.NewInt(0x01), 0x00, caller, token, big.NewInt(1), 0)
	assert.NotEqual(t, a, b)
}
