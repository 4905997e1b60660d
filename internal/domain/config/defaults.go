package config

import (
	"fmt"
	"strings"
)

// DefaultNamespace is used when neither a flag nor a saved default names one
const DefaultNamespace = "default"

// Defaults are the namespace and network a checkout falls back to when
// --namespace or --network is not given
type Defaults struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" mapstructure:"namespace"`
	Network   string `json:"network,omitempty" yaml:"network,omitempty" mapstructure:"network"`
}

// DefaultKey names one field of Defaults
type DefaultKey string

const (
	KeyNamespace DefaultKey = "namespace"
	KeyNetwork   DefaultKey = "network"
)

var defaultKeyAliases = map[string]DefaultKey{
	"namespace": KeyNamespace,
	"ns":        KeyNamespace,
	"network":   KeyNetwork,
	"net":       KeyNetwork,
}

// DefaultKeys lists the keys in display order
func DefaultKeys() []DefaultKey {
	return []DefaultKey{KeyNamespace, KeyNetwork}
}

// ParseDefaultKey accepts a key or its short alias in any case
func ParseDefaultKey(raw string) (DefaultKey, error) {
	key, ok := defaultKeyAliases[strings.ToLower(raw)]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: namespace (ns), network (net)", raw)
	}
	return key, nil
}

// Get returns the saved value of key, empty when unset
func (d *Defaults) Get(key DefaultKey) string {
	switch key {
	case KeyNamespace:
		return d.Namespace
	case KeyNetwork:
		return d.Network
	}
	return ""
}

// Set stores value under key. Namespaces become path segments of record IDs
// and lock keys, so they cannot contain '/'.
func (d *Defaults) Set(key DefaultKey, value string) error {
	if value == "" {
		return fmt.Errorf("value for %s cannot be empty", key)
	}
	switch key {
	case KeyNamespace:
		if strings.Contains(value, "/") {
			return fmt.Errorf("namespace cannot contain '/'")
		}
		d.Namespace = value
	case KeyNetwork:
		d.Network = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Clear unsets key and returns the value it held
func (d *Defaults) Clear(key DefaultKey) string {
	previous := d.Get(key)
	switch key {
	case KeyNamespace:
		d.Namespace = ""
	case KeyNetwork:
		d.Network = ""
	}
	return previous
}

// EffectiveNamespace is the saved namespace or DefaultNamespace
func (d *Defaults) EffectiveNamespace() string {
	if d.Namespace == "" {
		return DefaultNamespace
	}
	return d.Namespace
}
