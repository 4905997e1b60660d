// Package usecasetest provides in-memory implementations of the use case
// ports for tests.
package usecasetest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// OwnableABI exposes owner() and both transferOwnership flavours
const OwnableABI = `[
	{"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"transferOwnership","inputs":[{"name":"newOwner","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"transferOwnership","inputs":[{"name":"newOwner","type":"address"},{"name":"direct","type":"bool"},{"name":"renounce","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"}
]`

// PlainABI has no ownership methods
const PlainABI = `[{"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"}]`

// Repository is an in-memory DeploymentRepository that stores copies
type Repository struct {
	mu      sync.Mutex
	records map[string]models.DeploymentRecord
	Saves   int
}

func NewRepository() *Repository {
	return &Repository{records: make(map[string]models.DeploymentRecord)}
}

func (r *Repository) GetDeployment(_ context.Context, id string) (*models.DeploymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	return &rec, nil
}

func (r *Repository) ListDeployments(_ context.Context, filter domain.RecordFilter) ([]*models.DeploymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.DeploymentRecord
	for _, rec := range r.records {
		if filter.Namespace != "" && rec.Namespace != filter.Namespace {
			continue
		}
		if filter.ChainID != 0 && rec.ChainID != filter.ChainID {
			continue
		}
		if filter.Name != "" && rec.Name != filter.Name {
			continue
		}
		rec := rec
		result = append(result, &rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *Repository) SaveDeployment(_ context.Context, rec *models.DeploymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = *rec
	r.Saves++
	return nil
}

func (r *Repository) DeleteDeployment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	delete(r.records, id)
	return nil
}

// Artifacts serves the same ABI for every contract unless overridden
type Artifacts struct {
	ABI       map[string]string
	Requested []string
}

func (a *Artifacts) GetArtifact(_ context.Context, name string) (*models.Artifact, error) {
	a.Requested = append(a.Requested, name)
	raw := OwnableABI
	if custom, ok := a.ABI[name]; ok {
		raw = custom
	}
	art := &models.Artifact{
		ContractName: name,
		ABI:          json.RawMessage(raw),
		Bytecode:     models.Bytecode{Object: "0x6002600c60003960026000f360ff"},
	}
	if err := art.ParseABI(); err != nil {
		return nil, err
	}
	return art, nil
}

// DeployCall records one Deploy invocation
type DeployCall struct {
	Contract string
	Address  common.Address
	Args     []any
}

// TransferCall records one TransferOwnership invocation
type TransferCall struct {
	Address common.Address
	Args    []any
}

// Backend is a deterministic in-memory ChainBackend. Deployed contracts are
// owned by the deployer.
type Backend struct {
	Deployer common.Address
	Chain    uint64

	Deploys   []DeployCall
	Transfers []TransferCall
	Owners    map[common.Address]common.Address

	// FailDeploy makes Deploy of the named contract fail
	FailDeploy map[string]error
	// FailTransfers makes the next N transfers fail
	FailTransfers int

	Connected bool
	Closed    bool
	nonce     uint64
}

func NewBackend() *Backend {
	return &Backend{
		Deployer:   common.HexToAddress("0x00000000000000000000000000000000000000d1"),
		Owners:     make(map[common.Address]common.Address),
		FailDeploy: make(map[string]error),
	}
}

func (b *Backend) Connect(_ context.Context, network *config.Network, _ string) error {
	b.Chain = network.ChainID
	b.Connected = true
	return nil
}

func (b *Backend) From() common.Address { return b.Deployer }
func (b *Backend) ChainID() uint64      { return b.Chain }
func (b *Backend) Close()               { b.Closed = true }

func (b *Backend) Deploy(_ context.Context, artifact *models.Artifact, args ...any) (common.Address, common.Hash, error) {
	if err := b.FailDeploy[artifact.ContractName]; err != nil {
		return common.Address{}, common.Hash{}, err
	}
	addr := crypto.CreateAddress(b.Deployer, b.nonce)
	tx := common.BigToHash(new(big.Int).SetUint64(b.nonce + 1))
	b.nonce++
	b.Deploys = append(b.Deploys, DeployCall{Contract: artifact.ContractName, Address: addr, Args: args})
	b.Owners[addr] = b.Deployer
	return addr, tx, nil
}

func (b *Backend) Owner(_ context.Context, address common.Address, contractABI *abi.ABI) (common.Address, error) {
	if _, ok := contractABI.Methods["owner"]; !ok {
		return common.Address{}, fmt.Errorf("no owner method")
	}
	owner, ok := b.Owners[address]
	if !ok {
		return common.Address{}, fmt.Errorf("no contract at %s", address.Hex())
	}
	return owner, nil
}

func (b *Backend) TransferOwnership(_ context.Context, address common.Address, _ *abi.ABI, args ...any) (common.Hash, error) {
	tx := common.BigToHash(new(big.Int).SetUint64(b.nonce + 1))
	b.nonce++
	if b.FailTransfers > 0 {
		b.FailTransfers--
		return tx, &domain.TransactionFailureError{Op: "transferOwnership", TxHash: tx.Hex(), Err: fmt.Errorf("execution reverted")}
	}
	b.Transfers = append(b.Transfers, TransferCall{Address: address, Args: args})
	b.Owners[address] = args[0].(common.Address)
	return tx, nil
}

// TransfersTo returns the transfers sent to address
func (b *Backend) TransfersTo(address common.Address) []TransferCall {
	var calls []TransferCall
	for _, c := range b.Transfers {
		if c.Address == address {
			calls = append(calls, c)
		}
	}
	return calls
}

// Locker is an in-memory SessionLocker
type Locker struct {
	mu   sync.Mutex
	held map[string]string
	// Acquired lists every key acquired, in order
	Acquired []string
}

func NewLocker() *Locker {
	return &Locker{held: make(map[string]string)}
}

func (l *Locker) Acquire(_ context.Context, key, owner string) (usecase.SessionLease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if holder, ok := l.held[key]; ok {
		return nil, fmt.Errorf("%w: %s held by %s", domain.ErrSessionLocked, key, holder)
	}
	l.held[key] = owner
	l.Acquired = append(l.Acquired, key)
	return &lease{locker: l, key: key}, nil
}

// Held reports whether key is currently locked
func (l *Locker) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok
}

type lease struct {
	locker *Locker
	key    string
}

func (l *lease) Release(context.Context) error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()
	delete(l.locker.held, l.key)
	return nil
}

// Registry is a fixed StepRegistry
type Registry []*usecase.Step

func (r Registry) Steps() []*usecase.Step { return r }

// Progress collects progress events and console lines
type Progress struct {
	Events []usecase.ProgressEvent
	Infos  []string
	Errors []string
}

func (p *Progress) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	p.Events = append(p.Events, event)
}
func (p *Progress) Info(message string)  { p.Infos = append(p.Infos, message) }
func (p *Progress) Error(message string) { p.Errors = append(p.Errors, message) }

// Stages returns the stage of every event, in order
func (p *Progress) Stages() []string {
	stages := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		stages = append(stages, e.Stage)
	}
	return stages
}
