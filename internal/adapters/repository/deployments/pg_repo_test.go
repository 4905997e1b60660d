package deployments_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/adapters/repository/deployments"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("ZAPDEPLOY_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("ZAPDEPLOY_TEST_PG_DSN not set")
	}

	ctx := context.Background()
	repo, err := deployments.NewPostgresRepository(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	assert.NotContains(t, repo.Describe(), "password")

	// A fresh namespace keeps runs against a shared database apart
	namespace := "test-" + uuid.NewString()[:8]

	t.Run("save, get and upsert", func(t *testing.T) {
		rec := testRecord(namespace, 31337, "ZapStake")
		t.Cleanup(func() { _ = repo.DeleteDeployment(ctx, rec.ID) })
		require.NoError(t, repo.SaveDeployment(ctx, rec))

		got, err := repo.GetDeployment(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.Address, got.Address)
		assert.Equal(t, rec.Args, got.Args)
		assert.JSONEq(t, string(rec.ABI), string(got.ABI))
		assert.Equal(t, models.StateDeployed, got.State)

		rec.State = models.StateOwnershipTransferred
		rec.Owner = "0x00000000000000000000000000000000000000de"
		require.NoError(t, repo.SaveDeployment(ctx, rec))

		got, err = repo.GetDeployment(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StateOwnershipTransferred, got.State)
		assert.Equal(t, rec.Owner, got.Owner)
	})

	t.Run("list with filter", func(t *testing.T) {
		for _, rec := range []*models.DeploymentRecord{
			testRecord(namespace, 1, "ZapStake"),
			testRecord(namespace, 1, "ZapWizard"),
			testRecord(namespace, 3, "ZapStake"),
		} {
			id := rec.ID
			t.Cleanup(func() { _ = repo.DeleteDeployment(ctx, id) })
			require.NoError(t, repo.SaveDeployment(ctx, rec))
		}

		chain1, err := repo.ListDeployments(ctx, domain.RecordFilter{Namespace: namespace, ChainID: 1})
		require.NoError(t, err)
		require.Len(t, chain1, 2)
		assert.Equal(t, "ZapStake", chain1[0].Name)

		tagged, err := repo.ListDeployments(ctx, domain.RecordFilter{Namespace: namespace, Tag: "ZapWizard"})
		require.NoError(t, err)
		assert.Len(t, tagged, 1)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := repo.GetDeployment(ctx, namespace+"/1/Nope")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.True(t, errors.Is(repo.DeleteDeployment(ctx, namespace+"/1/Nope"), domain.ErrNotFound))
	})
}
