package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zapswap/zapdeploy/internal/usecase"
)

// LogSink reports run progress through the structured logger, for output
// modes where spinners and tree lines would corrupt stdout
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("component", "progress")}
}

func (s *LogSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	result, ok := event.Metadata.(*usecase.StepResult)
	if event.Stage != "step_completed" || !ok {
		s.log.DebugContext(ctx, "progress", "stage", event.Stage, "message", event.Message)
		return
	}

	attrs := []any{"step", result.Step.Name, "progress", fmt.Sprintf("%d/%d", event.Current, event.Total)}
	if out := result.Outcome; out != nil {
		if out.Record != nil {
			attrs = append(attrs, "state", out.Record.State, "address", out.Record.Address)
		}
		attrs = append(attrs, "deployed", out.Deployed, "skipped", out.Skipped, "transfers", len(out.Transfers))
	}
	s.log.InfoContext(ctx, "step complete", attrs...)
}

// Info carries ownership handoff announcements, which operators want in the log
func (s *LogSink) Info(message string) {
	s.log.Info(message)
}

func (s *LogSink) Error(message string) {
	s.log.Error(message)
}

var _ usecase.ProgressSink = (*LogSink)(nil)
