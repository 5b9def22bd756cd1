package chain

import (
	"math/big"
	"sync/atomic"
)

// Context identifies the hosting ledger and its current height. The record id
// derivation binds every bridge record to both.
type Context interface {
	ChainID() *big.Int
	BlockNumber() (uint64, error)
}

// StaticContext is a fixed chain identity with a height that advances on each
// query, the way a single-node dev chain mines per interaction. Used in local
// mode and in tests.
type StaticContext struct {
	chainID *big.Int
	height  atomic.Uint64
}

func NewStaticContext(chainID *big.Int, startHeight uint64) *StaticContext {
	c := &StaticContext{chainID: new(big.Int).Set(chainID)}
	c.height.Store(startHeight)
	return c
}

func (c *StaticContext) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

func (c *StaticContext) BlockNumber() (uint64, error) {
	return c.height.Add(1), nil
}
