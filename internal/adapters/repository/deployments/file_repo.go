package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

const (
	DataDir         = ".zapdeploy"
	DeploymentsFile = "deployments.json"
)

// FileRepository stores deployment records in a JSON file keyed by record ID
type FileRepository struct {
	dir         string
	mu          sync.RWMutex
	deployments map[string]*models.DeploymentRecord
}

// NewFileRepository opens (or creates) the record file under dir
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
	}

	m := &FileRepository{
		dir:         dir,
		deployments: make(map[string]*models.DeploymentRecord),
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	return m, nil
}

// NewFileRepositoryFromConfig creates a new FileRepository from RuntimeConfig
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	dir := cfg.DataDir
	if dir == "" {
		dir = filepath.Join(cfg.ProjectRoot, DataDir)
	}
	return NewFileRepository(dir)
}

func (m *FileRepository) path() string {
	return filepath.Join(m.dir, DeploymentsFile)
}

// Describe returns the record file path
func (m *FileRepository) Describe() string {
	return m.path()
}

func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := json.Unmarshal(data, &m.deployments); err != nil {
		return fmt.Errorf("failed to parse %s: %w", m.path(), err)
	}
	if m.deployments == nil {
		m.deployments = make(map[string]*models.DeploymentRecord)
	}
	return nil
}

// save writes the record file; callers hold the write lock
func (m *FileRepository) save() error {
	data, err := json.MarshalIndent(m.deployments, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := m.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, m.path())
}

// GetDeployment retrieves a record by ID
func (m *FileRepository) GetDeployment(ctx context.Context, id string) (*models.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.deployments[id]
	if !exists {
		return nil, fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}

	// Clone to avoid mutations
	clone := cloneRecord(rec)
	return clone, nil
}

// ListDeployments returns the records matching filter, sorted by ID
func (m *FileRepository) ListDeployments(ctx context.Context, filter domain.RecordFilter) ([]*models.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*models.DeploymentRecord
	for _, rec := range m.deployments {
		if !matches(rec, filter) {
			continue
		}
		result = append(result, cloneRecord(rec))
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SaveDeployment inserts or replaces a record
func (m *FileRepository) SaveDeployment(ctx context.Context, rec *models.DeploymentRecord) error {
	if rec.ID == "" {
		rec.ID = models.RecordID(rec.Namespace, rec.ChainID, rec.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deployments[rec.ID] = cloneRecord(rec)
	return m.save()
}

// DeleteDeployment removes a record
func (m *FileRepository) DeleteDeployment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.deployments[id]; !exists {
		return fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}

	delete(m.deployments, id)
	return m.save()
}

func matches(rec *models.DeploymentRecord, filter domain.RecordFilter) bool {
	if filter.Namespace != "" && rec.Namespace != filter.Namespace {
		return false
	}
	if filter.ChainID != 0 && rec.ChainID != filter.ChainID {
		return false
	}
	if filter.Name != "" && rec.Name != filter.Name {
		return false
	}
	if filter.Tag != "" && !slices.Contains(rec.Tags, filter.Tag) {
		return false
	}
	return true
}

func cloneRecord(rec *models.DeploymentRecord) *models.DeploymentRecord {
	clone := *rec
	clone.ABI = slices.Clone(rec.ABI)
	clone.Args = slices.Clone(rec.Args)
	clone.Tags = slices.Clone(rec.Tags)
	return &clone
}

var (
	_ usecase.DeploymentRepository = (*FileRepository)(nil)
	_ usecase.Describer            = (*FileRepository)(nil)
)
