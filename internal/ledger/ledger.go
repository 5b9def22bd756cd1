package ledger

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTransferRejected    = errors.New("transfer rejected")
	ErrBurnRejected        = errors.New("burn rejected")
)

// TokenLedger is the fungible-token capability consumed by the gateway.
// Implementations must have standard token semantics: amounts are conserved
// and failures are observable, not silent.
type TokenLedger interface {
	// TransferIn pulls amount of token from the caller into gateway custody.
	TransferIn(token, from, to common.Address, amount *big.Int) error
	// Burn permanently destroys amount of token held by holder.
	Burn(token, holder common.Address, amount *big.Int) error
	BalanceOf(token, addr common.Address) *big.Int
	TotalBurned(token common.Address) *big.Int
}

// NativeLedger moves native currency between identities.
type NativeLedger interface {
	Transfer(from, to common.Address, amountWei *big.Int) error
	NativeBalanceOf(addr common.Address) *big.Int
}

// Snapshotter provides transactional revert over ledger state, mirroring the
// hosting chain's all-or-nothing call semantics. The gateway takes a snapshot
// before the first external effect of a deposit and reverts to it on any
// downstream failure.
type Snapshotter interface {
	Snapshot() int
	RevertToSnapshot(id int)
}

// Ledger is the full external capability surface the gateway depends on.
type Ledger interface {
	TokenLedger
	NativeLedger
	Snapshotter
}
