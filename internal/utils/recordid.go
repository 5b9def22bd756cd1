package utils

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DeriveRecordID derives the canonical bridge record id as the keccak-256
// digest over the fixed-width concatenation of the hosting chain id, the
// block height, the caller, the token, the amount and the unix timestamp.
// Two deposits differing in any field produce different ids except with
// cryptographically negligible probability, so the relayer can treat the id
// as an idempotency key.
func DeriveRecordID(chainID *big.Int, blockHeight uint64, caller, token common.Address, amount *big.Int, timestamp int64) common.Hash {
	buf := make([]byte, 0, 32+8+20+20+32+8)
	buf = append(buf, common.LeftPadBytes(chainID.Bytes(), 32)...)
	buf = binary.BigEndian.AppendUint64(buf, blockHeight)
	buf = append(buf, caller.Bytes()...)
	buf = append(buf, token.Bytes()...)
	buf = append(buf, common.LeftPadBytes(amount.Bytes(), 32)...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(timestamp))
	return crypto.Keccak256Hash(buf)
}
