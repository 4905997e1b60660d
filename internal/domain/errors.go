package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrUnknownNetwork is returned when a chain ID is absent from a required address table
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrMissingDependency is returned when a step reads a record its dependencies do not provide
	ErrMissingDependency = errors.New("missing dependency")

	// ErrTransactionFailure is returned when a deploy or ownership transaction fails or reverts
	ErrTransactionFailure = errors.New("transaction failure")

	// ErrCircularDependency is returned when the step graph contains a cycle
	ErrCircularDependency = errors.New("circular dependency")

	// ErrUnknownTag is returned when a dependency or filter names a tag no step provides
	ErrUnknownTag = errors.New("unknown tag")

	// ErrSessionLocked is returned when another session holds the deployer lock
	ErrSessionLocked = errors.New("deployment session locked")

	// ErrNotOwnable is returned when a contract ABI lacks owner/transferOwnership
	ErrNotOwnable = errors.New("contract is not ownable")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")
)

// UnknownNetworkError reports a chain ID missing from an address table.
type UnknownNetworkError struct {
	Table   string
	ChainID string
}

func (e *UnknownNetworkError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("unknown network %q", e.ChainID)
	}
	return fmt.Sprintf("unknown network %q: no %s address", e.ChainID, e.Table)
}

func (e *UnknownNetworkError) Is(target error) bool {
	return target == ErrUnknownNetwork
}

// MissingDependencyError reports a deployment record that is not available to the reader.
type MissingDependencyError struct {
	Name   string
	Reader string
}

func (e *MissingDependencyError) Error() string {
	if e.Reader == "" {
		return fmt.Sprintf("missing dependency: no deployment named %q", e.Name)
	}
	return fmt.Sprintf("missing dependency: step %q cannot read deployment %q (not deployed or not declared as a dependency)", e.Reader, e.Name)
}

func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

// TransactionFailureError wraps the failure of a deploy or ownership transfer.
type TransactionFailureError struct {
	Op     string // "deploy" or "transferOwnership"
	Name   string
	TxHash string
	Err    error
}

func (e *TransactionFailureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s failed", e.Op, e.Name)
	if e.TxHash != "" {
		fmt.Fprintf(&b, " (tx %s)", e.TxHash)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransactionFailureError) Unwrap() error {
	return e.Err
}

func (e *TransactionFailureError) Is(target error) bool {
	return target == ErrTransactionFailure
}

// CircularDependencyError lists the steps that could not be ordered.
type CircularDependencyError struct {
	Steps []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected involving steps: %v", e.Steps)
}

func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}
