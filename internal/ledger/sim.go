package ledger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SimLedger is an in-process Ledger used in local mode and in tests. Balances
// are plain maps guarded by the gateway's call serialization, and snapshots
// are full copies of the balance state.
//
// TransferInHook and BurnHook run before the corresponding state change and
// can reject it by returning an error. Tests use them to simulate failing
// token contracts and to drive re-entrant calls from inside the external-call
// surface.
type SimLedger struct {
	tokens  map[common.Address]map[common.Address]*big.Int
	burned  map[common.Address]*big.Int
	native  map[common.Address]*big.Int
	history []simState

	TransferInHook func(token, from, to common.Address, amount *big.Int) error
	BurnHook       func(token, holder common.Address, amount *big.Int) error
}

type simState struct {
	tokens map[common.Address]map[common.Address]*big.Int
	burned map[common.Address]*big.Int
	native map[common.Address]*big.Int
}

func NewSimLedger() *SimLedger {
	return &SimLedger{
		tokens: make(map[common.Address]map[common.Address]*big.Int),
		burned: make(map[common.Address]*big.Int),
		native: make(map[common.Address]*big.Int),
	}
}

// Mint credits amount of token to addr. Test and local-mode helper.
func (l *SimLedger) Mint(token, addr common.Address, amount *big.Int) {
	l.credit(token, addr, amount)
}

// MintNative credits native currency to addr. Test and local-mode helper.
func (l *SimLedger) MintNative(addr common.Address, amountWei *big.Int) {
	bal := l.nativeBalance(addr)
	l.native[addr] = new(big.Int).Add(bal, amountWei)
}

func (l *SimLedger) TransferIn(token, from, to common.Address, amount *big.Int) error {
	if l.TransferInHook != nil {
		if err := l.TransferInHook(token, from, to, amount); err != nil {
			return fmt.Errorf("%w: %s", ErrTransferRejected, err)
		}
	}

	bal := l.balance(token, from)
	if bal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: token %s holder %s has %s, needs %s",
			ErrInsufficientBalance, token.Hex(), from.Hex(), bal, amount)
	}

	l.debit(token, from, amount)
	l.credit(token, to, amount)
	return nil
}

func (l *SimLedger) Burn(token, holder common.Address, amount *big.Int) error {
	if l.BurnHook != nil {
		if err := l.BurnHook(token, holder, amount); err != nil {
			return fmt.Errorf("%w: %s", ErrBurnRejected, err)
		}
	}

	bal := l.balance(token, holder)
	if bal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: token %s holder %s has %s, burns %s",
			ErrInsufficientBalance, token.Hex(), holder.Hex(), bal, amount)
	}

	l.debit(token, holder, amount)
	total, ok := l.burned[token]
	if !ok {
		total = new(big.Int)
	}
	l.burned[token] = new(big.Int).Add(total, amount)
	return nil
}

func (l *SimLedger) BalanceOf(token, addr common.Address) *big.Int {
	return new(big.Int).Set(l.balance(token, addr))
}

func (l *SimLedger) TotalBurned(token common.Address) *big.Int {
	total, ok := l.burned[token]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(total)
}

func (l *SimLedger) Transfer(from, to common.Address, amountWei *big.Int) error {
	if amountWei.Sign() == 0 {
		return nil
	}

	bal := l.nativeBalance(from)
	if bal.Cmp(amountWei) < 0 {
		return fmt.Errorf("%w: %s has %s wei, needs %s",
			ErrInsufficientBalance, from.Hex(), bal, amountWei)
	}

	l.native[from] = new(big.Int).Sub(bal, amountWei)
	l.native[to] = new(big.Int).Add(l.nativeBalance(to), amountWei)
	return nil
}

func (l *SimLedger) NativeBalanceOf(addr common.Address) *big.Int {
	return new(big.Int).Set(l.nativeBalance(addr))
}

// Snapshot copies the full balance state and returns its index.
func (l *SimLedger) Snapshot() int {
	l.history = append(l.history, l.copyState())
	return len(l.history) - 1
}

// RevertToSnapshot restores the state captured at id and discards later
// snapshots. An unknown id is ignored.
func (l *SimLedger) RevertToSnapshot(id int) {
	if id < 0 || id >= len(l.history) {
		return
	}
	s := l.history[id]
	l.tokens = s.tokens
	l.burned = s.burned
	l.native = s.native
	l.history = l.history[:id]
}

func (l *SimLedger) copyState() simState {
	s := simState{
		tokens: make(map[common.Address]map[common.Address]*big.Int, len(l.tokens)),
		burned: make(map[common.Address]*big.Int, len(l.burned)),
		native: make(map[common.Address]*big.Int, len(l.native)),
	}
	for token, holders := range l.tokens {
		hs := make(map[common.Address]*big.Int, len(holders))
		for addr, bal := range holders {
			hs[addr] = new(big.Int).Set(bal)
		}
		s.tokens[token] = hs
	}
	for token, total := range l.burned {
		s.burned[token] = new(big.Int).Set(total)
	}
	for addr, bal := range l.native {
		s.native[addr] = new(big.Int).Set(bal)
	}
	return s
}

func (l *SimLedger) balance(token, addr common.Address) *big.Int {
	holders, ok := l.tokens[token]
	if !ok {
		return new(big.Int)
	}
	bal, ok := holders[addr]
	if !ok {
		return new(big.Int)
	}
	return bal
}

func (l *SimLedger) nativeBalance(addr common.Address) *big.Int {
	bal, ok := l.native[addr]
	if !ok {
		return new(big.Int)
	}
	return bal
}

func (l *SimLedger) credit(token, addr common.Address, amount *big.Int) {
	holders, ok := l.tokens[token]
	if !ok {
		holders = make(map[common.Address]*big.Int)
		l.tokens[token] = holders
	}
	holders[addr] = new(big.Int).Add(l.balance(token, addr), amount)
}

func (l *SimLedger) debit(token, addr common.Address, amount *big.Int) {
	holders, ok := l.tokens[token]
	if !ok {
		holders = make(map[common.Address]*big.Int)
		l.tokens[token] = holders
	}
	holders[addr] = new(big.Int).Sub(l.balance(token, addr), amount)
}
