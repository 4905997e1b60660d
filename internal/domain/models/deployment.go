package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StepState is the lifecycle position of a step in one environment
type StepState string

const (
	StateUndeployed           StepState = "UNDEPLOYED"
	StateDeployed             StepState = "DEPLOYED"
	StateOwnershipPending     StepState = "OWNERSHIP_PENDING"
	StateOwnershipTransferred StepState = "OWNERSHIP_TRANSFERRED"
)

// IsTerminal reports whether the state is a terminal-success state
func (s StepState) IsTerminal() bool {
	return s == StateDeployed || s == StateOwnershipTransferred
}

// DeploymentRecord is the persisted result of a successful contract deployment
type DeploymentRecord struct {
	// Core identification
	ID        string `json:"id" yaml:"id"`               // e.g., "default/31337/ZapStake"
	Name      string `json:"name" yaml:"name"`           // e.g., "ZapStake"
	Namespace string `json:"namespace" yaml:"namespace"` // e.g., "default", "staging"
	ChainID   uint64 `json:"chainId" yaml:"chainId"`

	Contract string          `json:"contract" yaml:"contract"` // artifact name
	Address  string          `json:"address" yaml:"address"`
	ABI      json.RawMessage `json:"abi" yaml:"-"`
	TxHash   string          `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	Deployer string          `json:"deployer,omitempty" yaml:"deployer,omitempty"`
	Args     []string        `json:"args,omitempty" yaml:"args,omitempty"` // rendered constructor arguments

	// Ownership bookkeeping for this step
	State StepState `json:"state" yaml:"state"`
	Owner string    `json:"owner,omitempty" yaml:"owner,omitempty"`

	Tags      []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// RecordID builds the unique record key for a deployment name in an environment
func RecordID(namespace string, chainID uint64, name string) string {
	return fmt.Sprintf("%s/%d/%s", namespace, chainID, name)
}

// ParseRecordID splits a record ID into its parts
func ParseRecordID(id string) (namespace string, chainID uint64, name string, err error) {
	parts := strings.SplitN(id, "/", 3)
	if len(parts) != 3 {
		return "", 0, "", fmt.Errorf("invalid record id %q", id)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &chainID); err != nil {
		return "", 0, "", fmt.Errorf("invalid chain id in record id %q: %w", id, err)
	}
	return parts[0], chainID, parts[2], nil
}

// GetDisplayName returns a human-friendly name for the record
func (d *DeploymentRecord) GetDisplayName() string {
	if d.Contract != "" && d.Contract != d.Name {
		return fmt.Sprintf("%s (%s)", d.Name, d.Contract)
	}
	return d.Name
}
