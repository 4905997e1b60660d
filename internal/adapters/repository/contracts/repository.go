package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// Repository discovers compiled artifacts under the artifacts directory.
// Both the flat layout (Name.json) and the hardhat/foundry layout
// (Source.sol/Name.json) are indexed.
type Repository struct {
	artifactsDir string
	paths        map[string][]string // contract name -> artifact files
	artifacts    map[string]*models.Artifact
	log          *slog.Logger
	mu           sync.RWMutex
	indexed      bool
}

// NewRepository creates a new artifact repository
func NewRepository(artifactsDir string, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir: artifactsDir,
		log:          log,
		paths:        make(map[string][]string),
		artifacts:    make(map[string]*models.Artifact),
	}
}

// Index walks the artifacts directory once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.artifactsDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s: %w", r.artifactsDir, domain.ErrNotFound)
	}

	err := filepath.WalkDir(r.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), ".json")
		r.paths[name] = append(r.paths[name], path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "count", len(r.paths))
	r.indexed = true
	return nil
}

// GetArtifact returns the parsed artifact for a contract name
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	cached, ok := r.artifacts[name]
	paths := r.paths[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	switch len(paths) {
	case 0:
		return nil, fmt.Errorf("artifact %s: %w", name, domain.ErrNotFound)
	case 1:
	default:
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)
		return nil, fmt.Errorf("multiple artifacts named %s: %s", name, strings.Join(sorted, ", "))
	}

	artifact, err := loadArtifact(paths[0])
	if err != nil {
		return nil, err
	}
	if artifact.ContractName == "" {
		artifact.ContractName = name
	}

	r.mu.Lock()
	r.artifacts[name] = artifact
	r.mu.Unlock()

	return artifact, nil
}

// Names lists every indexed contract name
func (r *Repository) Names() ([]string, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.paths))
	for name := range r.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func loadArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}
	if err := artifact.ParseABI(); err != nil {
		return nil, err
	}
	return &artifact, nil
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
