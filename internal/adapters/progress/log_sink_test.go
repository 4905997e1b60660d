package progress

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

func TestLogSink(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "connecting", Message: "Connecting to localhost"})
	assert.Empty(t, buf.String(), "non-step events are debug only")

	sink.OnProgress(ctx, usecase.ProgressEvent{
		Stage:   "step_completed",
		Current: 2,
		Total:   5,
		Metadata: &usecase.StepResult{
			Step: &usecase.Step{Name: "ZapStake"},
			Outcome: &usecase.StepOutcome{
				Record:   &models.DeploymentRecord{Name: "ZapStake", Address: "0xabc", State: models.StateDeployed},
				Deployed: true,
			},
		},
	})
	sink.Info("Transfer GZap Ownership to Director")
	sink.Error("transferOwnership reverted")

	out := buf.String()
	assert.Contains(t, out, "step complete")
	assert.Contains(t, out, "step=ZapStake")
	assert.Contains(t, out, "progress=2/5")
	assert.Contains(t, out, "address=0xabc")
	assert.Contains(t, out, "deployed=true")
	assert.Contains(t, out, "Transfer GZap Ownership to Director")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=progress")
}
