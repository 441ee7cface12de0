package ens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ChainReader is the typed surface of the on-chain registry/resolver pair:
// one method per logical contract call. Injected into the Resolver so tests
// can substitute a double.
type ChainReader interface {
	// Resolver returns the resolver contract registered for node, or the
	// zero address when none is set.
	Resolver(ctx context.Context, node common.Hash) (common.Address, error)
	// Addr returns the address the resolver points node at.
	Addr(ctx context.Context, resolver common.Address, node common.Hash) (common.Address, error)
	// Text returns the value of a text record, empty when unset.
	Text(ctx context.Context, resolver common.Address, node common.Hash, key string) (string, error)
	// ContentHash returns the raw content hash bytes, empty when unset.
	ContentHash(ctx context.Context, resolver common.Address, node common.Hash) ([]byte, error)
}

const registryABIJSON = `[
	{"inputs":[{"internalType":"bytes32","name":"node","type":"bytes32"}],"name":"resolver","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"bytes32","name":"node","type":"bytes32"}],"name":"owner","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const resolverABIJSON = `[
	{"inputs":[{"internalType":"bytes32","name":"node","type":"bytes32"}],"name":"addr","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"bytes32","name":"node","type":"bytes32"},{"internalType":"string","name":"key","type":"string"}],"name":"text","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"bytes32","name":"node","type":"bytes32"}],"name":"contenthash","outputs":[{"internalType":"bytes","name":"","type":"bytes"}],"stateMutability":"view","type":"function"}
]`

var (
	registryABI = mustParseABI(registryABIJSON)
	resolverABI = mustParseABI(resolverABIJSON)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("parse ABI: %v", err))
	}
	return parsed
}

// Client implements ChainReader against a JSON-RPC endpoint.
type Client struct {
	eth      *ethclient.Client
	registry common.Address
	timeout  time.Duration
}

var _ ChainReader = (*Client)(nil)

// Dial connects to the RPC endpoint and binds the client to the given
// registry contract.
func Dial(ctx context.Context, rpcURL string, registry common.Address, timeout time.Duration) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", rpcURL, err)
	}
	return &Client{eth: eth, registry: registry, timeout: timeout}, nil
}

// Close releases the underlying RPC connection. Safe to call more than once.
func (c *Client) Close() {
	if c.eth != nil {
		c.eth.Close()
	}
}

func (c *Client) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...any) ([]any, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}

	out, err := contract.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return out, nil
}

func (c *Client) Resolver(ctx context.Context, node common.Hash) (common.Address, error) {
	out, err := c.call(ctx, c.registry, registryABI, "resolver", node)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out)
}

func (c *Client) Addr(ctx context.Context, resolver common.Address, node common.Hash) (common.Address, error) {
	out, err := c.call(ctx, resolver, resolverABI, "addr", node)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out)
}

func (c *Client) Text(ctx context.Context, resolver common.Address, node common.Hash, key string) (string, error) {
	out, err := c.call(ctx, resolver, resolverABI, "text", node, key)
	if err != nil {
		return "", err
	}
	if len(out) != 1 {
		return "", fmt.Errorf("unexpected text output arity %d", len(out))
	}
	value, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected text output type %T", out[0])
	}
	return value, nil
}

func (c *Client) ContentHash(ctx context.Context, resolver common.Address, node common.Hash) ([]byte, error) {
	out, err := c.call(ctx, resolver, resolverABI, "contenthash", node)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected contenthash output arity %d", len(out))
	}
	value, ok := out[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected contenthash output type %T", out[0])
	}
	return value, nil
}

func asAddress(out []any) (common.Address, error) {
	if len(out) != 1 {
		return common.Address{}, fmt.Errorf("unexpected output arity %d", len(out))
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected output type %T", out[0])
	}
	return addr, nil
}
