package progress

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

func TestRunProgress(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	ctx := context.Background()
	var out bytes.Buffer
	p := NewRunProgressTo(&out)

	plan, err := usecase.BuildPlan([]*usecase.Step{
		{Name: "GZapToken"},
		{Name: "ZapStake", Dependencies: []string{"GZapToken"}},
	}, nil)
	assert.NoError(t, err)

	p.OnProgress(ctx, usecase.ProgressEvent{Stage: "plan_created", Metadata: plan})

	token := &usecase.StepResult{
		Step: plan.Steps[0],
		Outcome: &usecase.StepOutcome{
			Record:   &models.DeploymentRecord{Name: "GZapToken", Address: "0xaaa"},
			Deployed: true,
		},
	}
	p.OnProgress(ctx, usecase.ProgressEvent{Stage: "step_completed", Current: 1, Total: 2, Metadata: token})

	stake := &usecase.StepResult{
		Step:    plan.Steps[1],
		Outcome: &usecase.StepOutcome{Record: &models.DeploymentRecord{Name: "ZapStake", Address: "0xbbb"}},
	}
	p.OnProgress(ctx, usecase.ProgressEvent{Stage: "step_completed", Current: 2, Total: 2, Metadata: stake})

	p.Info("Transfer ownership of ZapDirector to dev")

	failed := &usecase.StepResult{Step: plan.Steps[1], Error: errors.New("boom")}
	p.OnProgress(ctx, usecase.ProgressEvent{Stage: "step_failed", Current: 2, Total: 2, Metadata: failed})

	text := out.String()
	assert.Contains(t, text, "Plan: GZapToken → ZapStake")
	assert.Contains(t, text, "[1/2] ✓ GZapToken deployed at 0xaaa")
	assert.Contains(t, text, "[2/2] ✓ ZapStake reusing 0xbbb")
	assert.Contains(t, text, "Transfer ownership of ZapDirector to dev")
	assert.Contains(t, text, "[2/2] ✗ ZapStake: boom")
}

func TestDescribeStep(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	step := &usecase.Step{Name: "WETH9Mock"}

	assert.Equal(t, "⊘ WETH9Mock skipped", describeStep(&usecase.StepResult{
		Step:    step,
		Outcome: &usecase.StepOutcome{Skipped: true},
	}))
	assert.Equal(t, "○ WETH9Mock would deploy", describeStep(&usecase.StepResult{
		Step:    step,
		Outcome: &usecase.StepOutcome{Record: &models.DeploymentRecord{Name: "WETH9Mock"}},
	}))
}
