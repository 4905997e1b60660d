package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Bytecode holds creation bytecode from either a Hardhat artifact
// ("bytecode": "0x...") or a Foundry artifact ("bytecode": {"object": "0x..."}).
type Bytecode struct {
	Object string `json:"object"`
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}
	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	b.Object = obj.Object
	return nil
}

// Bytes decodes the hex bytecode
func (b Bytecode) Bytes() []byte {
	return common.FromHex(strings.TrimSpace(b.Object))
}

// Artifact represents a compiled contract artifact
type Artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     Bytecode        `json:"bytecode"`

	// Parsed ABI, populated by the artifact repository
	Parsed *abi.ABI `json:"-"`
}

// ParseABI parses the raw ABI into Parsed
func (a *Artifact) ParseABI() error {
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return fmt.Errorf("failed to parse ABI for %s: %w", a.ContractName, err)
	}
	a.Parsed = &parsed
	return nil
}

// IsOwnable reports whether the ABI exposes owner() and transferOwnership
func (a *Artifact) IsOwnable() bool {
	if a.Parsed == nil {
		return false
	}
	_, hasOwner := a.Parsed.Methods["owner"]
	_, hasTransfer := a.Parsed.Methods["transferOwnership"]
	return hasOwner && hasTransfer
}
