// Package addressbook maps chain IDs to well-known contract addresses.
//
// Tables are built once at package initialisation and never mutated. A
// chain ID missing from a table is always an error, never a zero address.
package addressbook

import (
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zapswap/zapdeploy/internal/domain"
)

// Table is an immutable mapping from chain ID (decimal string) to address
type Table struct {
	name    string
	entries map[string]common.Address
}

// NewTable builds a table from hex address literals
func NewTable(name string, entries map[string]string) Table {
	t := Table{
		name:    name,
		entries: make(map[string]common.Address, len(entries)),
	}
	for chainID, addr := range entries {
		t.entries[chainID] = common.HexToAddress(addr)
	}
	return t
}

// Name returns the table name used in error messages
func (t Table) Name() string {
	return t.name
}

// Lookup returns the address registered for chainID
func (t Table) Lookup(chainID string) (common.Address, bool) {
	addr, ok := t.entries[chainID]
	return addr, ok
}

// ChainIDs returns the table keys in numeric order
func (t Table) ChainIDs() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseUint(keys[i], 10, 64)
		b, errB := strconv.ParseUint(keys[j], 10, 64)
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

// Resolve returns the address for chainID or an UnknownNetworkError
func Resolve(t Table, chainID string) (common.Address, error) {
	addr, ok := t.Lookup(chainID)
	if !ok {
		return common.Address{}, &domain.UnknownNetworkError{Table: t.name, ChainID: chainID}
	}
	return addr, nil
}

// Override resolves listed chains from a prior deployment instead of a table
type Override struct {
	ChainIDs   []string
	Deployment string
}

// Applies reports whether chainID is covered by the override
func (o Override) Applies(chainID string) bool {
	for _, id := range o.ChainIDs {
		if id == chainID {
			return true
		}
	}
	return false
}

// ResolveWithOverride consults the override first and the table second.
// lookup returns the address of a named deployment record.
func ResolveWithOverride(t Table, chainID string, o Override, lookup func(name string) (common.Address, error)) (common.Address, error) {
	if o.Applies(chainID) {
		return lookup(o.Deployment)
	}
	return Resolve(t, chainID)
}
