package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

const createRecordsTable = `
	CREATE TABLE IF NOT EXISTS deployment_records (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		namespace  TEXT NOT NULL,
		chain_id   BIGINT NOT NULL,
		contract   TEXT NOT NULL,
		address    TEXT NOT NULL,
		abi        JSONB NOT NULL,
		tx_hash    TEXT NOT NULL DEFAULT '',
		deployer   TEXT NOT NULL DEFAULT '',
		args       TEXT[] NOT NULL DEFAULT '{}',
		state      TEXT NOT NULL,
		owner      TEXT NOT NULL DEFAULT '',
		tags       TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`

const recordColumns = `id, name, namespace, chain_id, contract, address, abi, tx_hash, deployer, args, state, owner, tags, created_at, updated_at`

// PostgresRepository stores deployment records in a shared PostgreSQL table
// so several operators see the same environments.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to dsn and ensures the records table exists
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createRecordsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create deployment_records table: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Close closes the connection pool
func (r *PostgresRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Describe names the database without credentials
func (r *PostgresRepository) Describe() string {
	cc := r.pool.Config().ConnConfig
	return fmt.Sprintf("%s@%s:%d/%s", cc.User, cc.Host, cc.Port, cc.Database)
}

// GetDeployment retrieves a record by ID
func (r *PostgresRepository) GetDeployment(ctx context.Context, id string) (*models.DeploymentRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM deployment_records WHERE id = $1`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deployment %s: %w", id, err)
	}
	return rec, nil
}

// ListDeployments returns the records matching filter, sorted by ID
func (r *PostgresRepository) ListDeployments(ctx context.Context, filter domain.RecordFilter) ([]*models.DeploymentRecord, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}
	if filter.Namespace != "" {
		add("namespace = $%d", filter.Namespace)
	}
	if filter.ChainID != 0 {
		add("chain_id = $%d", int64(filter.ChainID))
	}
	if filter.Name != "" {
		add("name = $%d", filter.Name)
	}
	if filter.Tag != "" {
		add("$%d = ANY(tags)", filter.Tag)
	}

	query := `SELECT ` + recordColumns + ` FROM deployment_records`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	defer rows.Close()

	var records []*models.DeploymentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveDeployment inserts or replaces a record
func (r *PostgresRepository) SaveDeployment(ctx context.Context, rec *models.DeploymentRecord) error {
	if rec.ID == "" {
		rec.ID = models.RecordID(rec.Namespace, rec.ChainID, rec.Name)
	}

	query := `
		INSERT INTO deployment_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			contract = EXCLUDED.contract,
			address = EXCLUDED.address,
			abi = EXCLUDED.abi,
			tx_hash = EXCLUDED.tx_hash,
			deployer = EXCLUDED.deployer,
			args = EXCLUDED.args,
			state = EXCLUDED.state,
			owner = EXCLUDED.owner,
			tags = EXCLUDED.tags,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`

	abiJSON := string(rec.ABI)
	if abiJSON == "" {
		abiJSON = "[]"
	}

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Name,
		rec.Namespace,
		int64(rec.ChainID),
		rec.Contract,
		rec.Address,
		abiJSON,
		rec.TxHash,
		rec.Deployer,
		nonNil(rec.Args),
		string(rec.State),
		rec.Owner,
		nonNil(rec.Tags),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save deployment %s: %w", rec.ID, err)
	}
	return nil
}

// DeleteDeployment removes a record
func (r *PostgresRepository) DeleteDeployment(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deployment_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deployment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanRecord(row pgx.Row) (*models.DeploymentRecord, error) {
	var (
		rec     models.DeploymentRecord
		chainID int64
		abiJSON string
		state   string
	)
	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Namespace,
		&chainID,
		&rec.Contract,
		&rec.Address,
		&abiJSON,
		&rec.TxHash,
		&rec.Deployer,
		&rec.Args,
		&state,
		&rec.Owner,
		&rec.Tags,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ChainID = uint64(chainID)
	rec.ABI = json.RawMessage(abiJSON)
	rec.State = models.StepState(state)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return &rec, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var (
	_ usecase.DeploymentRepository = (*PostgresRepository)(nil)
	_ usecase.Describer            = (*PostgresRepository)(nil)
)
