package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// Client is the RPC surface the backend needs
type Client interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Backend implements usecase.ChainBackend with go-ethereum bindings.
// It signs with a single local key and waits for every receipt.
type Backend struct {
	client  Client
	closer  func()
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	log     *slog.Logger
}

// NewBackend creates a backend that dials the network RPC on Connect
func NewBackend(log *slog.Logger) *Backend {
	return &Backend{log: log}
}

// NewBackendWithClient creates a backend over an existing client
func NewBackendWithClient(client Client, log *slog.Logger) *Backend {
	return &Backend{client: client, log: log}
}

// Connect dials the RPC, verifies the chain ID and loads the signer
func (b *Backend) Connect(ctx context.Context, network *config.Network, deployerKey string) error {
	if deployerKey == "" {
		return fmt.Errorf("no deployer key configured, set accounts.deployer_key or ZAPDEPLOY_DEPLOYER_KEY")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(deployerKey), "0x"))
	if err != nil {
		return fmt.Errorf("failed to parse deployer key: %w", err)
	}

	if b.client == nil {
		if network.RPCURL == "" {
			return fmt.Errorf("no RPC URL configured for network %s", network.Name)
		}
		client, err := ethclient.DialContext(ctx, network.RPCURL)
		if err != nil {
			return fmt.Errorf("failed to connect to RPC: %w", err)
		}
		b.client = client
		b.closer = client.Close
	}

	// Verify chain ID matches
	networkChainID, err := b.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && networkChainID.Uint64() != network.ChainID {
		return fmt.Errorf("%w: expected %d, RPC reports %d", domain.ErrInvalidChainID, network.ChainID, networkChainID.Uint64())
	}
	if network.ChainID == 0 {
		network.ChainID = networkChainID.Uint64()
	}

	b.key = key
	b.from = crypto.PubkeyToAddress(key.PublicKey)
	b.chainID = networkChainID

	b.log.Debug("connected", "network", network.Name, "chain_id", b.chainID, "deployer", b.from.Hex())
	return nil
}

func (b *Backend) From() common.Address {
	return b.from
}

func (b *Backend) ChainID() uint64 {
	if b.chainID == nil {
		return 0
	}
	return b.chainID.Uint64()
}

// Deploy sends the creation transaction and waits for a successful receipt
func (b *Backend) Deploy(ctx context.Context, artifact *models.Artifact, args ...any) (common.Address, common.Hash, error) {
	if err := b.connected(); err != nil {
		return common.Address{}, common.Hash{}, err
	}
	if artifact.Parsed == nil {
		if err := artifact.ParseABI(); err != nil {
			return common.Address{}, common.Hash{}, err
		}
	}
	bytecode := artifact.Bytecode.Bytes()
	if len(bytecode) == 0 {
		return common.Address{}, common.Hash{}, fmt.Errorf("artifact %s has no bytecode", artifact.ContractName)
	}

	auth, err := b.transactor(ctx)
	if err != nil {
		return common.Address{}, common.Hash{}, err
	}

	address, tx, _, err := bind.DeployContract(auth, *artifact.Parsed, bytecode, b.client, args...)
	if err != nil {
		return common.Address{}, common.Hash{}, fmt.Errorf("failed to deploy contract: %w", err)
	}

	b.log.Debug("contract deployment transaction sent", "contract", artifact.ContractName, "address", address.Hex(), "tx_hash", tx.Hash().Hex())

	if err := b.wait(ctx, "deploy", tx); err != nil {
		return common.Address{}, tx.Hash(), err
	}
	return address, tx.Hash(), nil
}

// Owner calls owner() on the contract
func (b *Backend) Owner(ctx context.Context, address common.Address, contractABI *abi.ABI) (common.Address, error) {
	if err := b.connected(); err != nil {
		return common.Address{}, err
	}

	bound := bind.NewBoundContract(address, *contractABI, b.client, b.client, b.client)
	var out []interface{}
	if err := bound.Call(&bind.CallOpts{Context: ctx}, &out, "owner"); err != nil {
		return common.Address{}, fmt.Errorf("owner() call failed: %w", err)
	}
	if len(out) != 1 {
		return common.Address{}, fmt.Errorf("owner() returned %d values", len(out))
	}
	owner, ok := abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("owner() did not return an address")
	}
	return *owner, nil
}

// TransferOwnership calls the transferOwnership overload matching len(args)
func (b *Backend) TransferOwnership(ctx context.Context, address common.Address, contractABI *abi.ABI, args ...any) (common.Hash, error) {
	if err := b.connected(); err != nil {
		return common.Hash{}, err
	}

	method, err := transferMethod(contractABI, len(args))
	if err != nil {
		return common.Hash{}, err
	}

	auth, err := b.transactor(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	bound := bind.NewBoundContract(address, *contractABI, b.client, b.client, b.client)
	tx, err := bound.Transact(auth, method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to send %s: %w", method, err)
	}

	b.log.Debug("ownership transfer sent", "address", address.Hex(), "tx_hash", tx.Hash().Hex())

	if err := b.wait(ctx, "transferOwnership", tx); err != nil {
		return tx.Hash(), err
	}
	return tx.Hash(), nil
}

func (b *Backend) Close() {
	if b.closer != nil {
		b.closer()
		b.closer = nil
		b.client = nil
	}
}

func (b *Backend) connected() error {
	if b.client == nil || b.key == nil {
		return fmt.Errorf("not connected to blockchain")
	}
	return nil
}

func (b *Backend) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(b.key, b.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx
	return auth, nil
}

func (b *Backend) wait(ctx context.Context, op string, tx *types.Transaction) error {
	receipt, err := bind.WaitMined(ctx, b.client, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &domain.TransactionFailureError{
			Op:     op,
			TxHash: tx.Hash().Hex(),
			Err:    fmt.Errorf("transaction reverted in block %s", receipt.BlockNumber),
		}
	}
	return nil
}

// transferMethod finds the transferOwnership overload taking argc inputs.
// go-ethereum suffixes overloaded method names, so match on RawName.
func transferMethod(contractABI *abi.ABI, argc int) (string, error) {
	for name, m := range contractABI.Methods {
		if m.RawName == "transferOwnership" && len(m.Inputs) == argc {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: no transferOwnership with %d arguments", domain.ErrNotOwnable, argc)
}

var _ usecase.ChainBackend = (*Backend)(nil)
