package utils

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// DepositMessage builds the canonical message a caller personal-signs to
// authenticate a deposit request. Every field the gateway acts on is bound
// into the message so the signature cannot be replayed with altered
// parameters.
func DepositMessage(caller, token common.Address, amount *big.Int, destination string, attachedFeeWei *big.Int) string {
	return fmt.Sprintf("bridgegate deposit: caller=%s token=%s amount=%s destination=%s fee=%s",
		strings.ToLower(caller.Hex()), strings.ToLower(token.Hex()), amount, destination, attachedFeeWei)
}

// RecoverSigner recovers the Ethereum address that personal-signed message.
func RecoverSigner(message, signature string) (common.Address, error) {
	if !strings.HasPrefix(signature, "0x") {
		return common.Address{}, fmt.Errorf("signature must start with 0x")
	}

	sigData, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to decode signature: %w", err)
	}

	// Signature should be 65 bytes: r(32) + s(32) + v(1)
	if len(sigData) != 65 {
		return common.Address{}, fmt.Errorf("signature must be exactly 65 bytes")
	}

	// Create message hash using Ethereum's personal message format
	messageHash := accounts.TextHash([]byte(message))

	// go-ethereum expects v to be 0 or 1, but wallets return 27 or 28
	if sigData[64] >= 27 {
		sigData[64] -= 27
	}

	publicKey, err := crypto.SigToPub(messageHash, sigData)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*publicKey), nil
}

// VerifyPersonalSignature verifies that a signature was created for the given
// message by the given address.
func VerifyPersonalSignature(message, signature string, signerAddress common.Address) (bool, error) {
	if message == "" {
		return false, fmt.Errorf("message cannot be empty")
	}
	if signature == "" {
		return false, fmt.Errorf("signature cannot be empty")
	}

	recovered, err := RecoverSigner(message, signature)
	if err != nil {
		return false, fmt.Errorf("failed to recover address from signature: %w", err)
	}

	return recovered == signerAddress, nil
}

// personalSign signs a message using Ethereum's personal message format.
func personalSign(message string, privateKey *ecdsa.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("private key cannot be nil")
	}
	if message == "" {
		return "", fmt.Errorf("message cannot be empty")
	}

	messageHash := accounts.TextHash([]byte(message))

	signature, err := crypto.Sign(messageHash, privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	return "0x" + hex.EncodeToString(signature), nil
}

// PersonalSignFromHex signs a message using a private key provided as a hex
// string. Used by tests and local tooling.
func PersonalSignFromHex(message string, privateKeyHex string) (string, error) {
	if privateKeyHex == "" {
		return "", fmt.Errorf("private key hex cannot be empty")
	}

	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")

	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("invalid private key hex format: %w", err)
	}

	privateKey, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return "", fmt.Errorf("failed to parse private key: %w", err)
	}

	return personalSign(message, privateKey)
}
