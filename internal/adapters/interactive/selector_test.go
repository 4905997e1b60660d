package interactive

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

func TestFuzzySearchFunc(t *testing.T) {
	items := []string{"default/1 ZapStake", "default/1 ZapWizard", "staging/3 UniswapV2Router02"}
	search := FuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("stake", 0))
	assert.False(t, search("stake", 1))
	assert.True(t, search("zwzd", 1))
	assert.True(t, search("ROUTER", 2))
	assert.False(t, search("wizard", 2))
}

func TestFormatDeploymentOptions(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	options := FormatDeploymentOptions([]*models.DeploymentRecord{
		{Name: "ZapStake", Contract: "ZapStake", Namespace: "default", ChainID: 3, Address: "0xabc", State: models.StateOwnershipTransferred},
	})
	require.Len(t, options, 1)
	assert.Equal(t, "default/3 ZapStake at 0xabc [ownership_transferred]", options[0])
}

func TestSelectorAdapter_NonInteractive(t *testing.T) {
	ctx := context.Background()
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	_, err := s.SelectDeployment(ctx, []*models.DeploymentRecord{{Name: "a"}, {Name: "b"}}, "pick")
	assert.Error(t, err)

	ok, err := s.Confirm(ctx, "continue?", true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Confirm(ctx, "continue?", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectorAdapter_SingleRecord(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{})
	rec := &models.DeploymentRecord{Name: "ZapStake"}

	got, err := s.SelectDeployment(context.Background(), []*models.DeploymentRecord{rec}, "pick")
	require.NoError(t, err)
	assert.Same(t, rec, got)

	_, err = s.SelectDeployment(context.Background(), nil, "pick")
	assert.Error(t, err)
}
