package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

const rpcTimeout = 10 * time.Second

// EthContext reads the chain identity and height from an Ethereum JSON-RPC
// endpoint. The chain id is fetched once at construction; the height is
// fetched per call.
type EthContext struct {
	client  *ethclient.Client
	chainID *big.Int
}

func NewEthContext(rpcURL string) (*EthContext, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to fetch chain id: %w", err)
	}

	return &EthContext{client: client, chainID: chainID}, nil
}

func (c *EthContext) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

func (c *EthContext) BlockNumber() (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	height, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch block number: %w", err)
	}
	return height, nil
}

func (c *EthContext) Close() {
	c.client.Close()
}
