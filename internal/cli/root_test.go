package cli

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/app"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"run", "plan", "list", "show", "networks", "forget", "reset", "config", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"debug", "non-interactive", "json", "namespace", "network", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	for _, flag := range []string{"tags", "force", "dry-run", "yes", "select"} {
		assert.NotNil(t, run.Flags().Lookup(flag), flag)
	}
}

func TestSkipAppInit(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"version", true},
		{"help", true},
		{"completion", true},
		{cobra.ShellCompRequestCmd, true},
		{"run", false},
		{"list", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, skipAppInit(&cobra.Command{Use: tt.name}))
		})
	}
}

func TestVersionRunsWithoutProject(t *testing.T) {
	t.Chdir(t.TempDir())

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "zapdeploy version")
}

func TestCommandOutsideProjectFails(t *testing.T) {
	t.Chdir(t.TempDir())

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zapdeploy.toml")
}

func TestOutputFormat(t *testing.T) {
	a := &app.App{Config: &config.RuntimeConfig{}}
	assert.Equal(t, "yaml", outputFormat(a, "yaml"))

	a.Config.JSON = true
	assert.Equal(t, "json", outputFormat(a, "yaml"))
}

func TestTagItems(t *testing.T) {
	steps := []*usecase.Step{
		{Name: "ZapToken"},
		{Name: "ZapStake", Tags: []string{"ZapStake", "core"}},
		{Name: "ZapDirector", Tags: []string{"ZapDirector", "core"}},
	}

	items := tagItems(steps)
	require.Len(t, items, 4)
	assert.Equal(t, "ZapDirector", items[0].tag)
	assert.Equal(t, "ZapStake", items[1].tag)
	assert.Equal(t, "ZapToken", items[2].tag)
	assert.Equal(t, "core", items[3].tag)
	assert.Equal(t, []string{"ZapDirector", "ZapStake"}, items[3].steps)
}

func TestMultiSelectModel(t *testing.T) {
	items := []tagItem{{tag: "a"}, {tag: "b"}, {tag: "c"}}
	key := func(s string) tea.KeyMsg {
		switch s {
		case "enter":
			return tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			return tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
		}
	}
	update := func(m multiSelectModel, s string) multiSelectModel {
		next, _ := m.Update(key(s))
		return next.(multiSelectModel)
	}

	t.Run("enter requires a selection", func(t *testing.T) {
		m := update(initialMultiSelectModel(items, "pick"), "enter")
		assert.False(t, m.done)
	})

	t.Run("toggle and confirm", func(t *testing.T) {
		m := initialMultiSelectModel(items, "pick")
		m = update(m, "down")
		m = update(m, " ")
		m = update(m, "enter")
		assert.True(t, m.done)
		assert.False(t, m.cancelled)
		assert.Equal(t, []int{1}, m.selectedIndices())
	})

	t.Run("select all toggles", func(t *testing.T) {
		m := update(initialMultiSelectModel(items, "pick"), "a")
		assert.Equal(t, []int{0, 1, 2}, m.selectedIndices())
		m = update(m, "a")
		assert.Empty(t, m.selectedIndices())
	})

	t.Run("quit cancels", func(t *testing.T) {
		m := update(initialMultiSelectModel(items, "pick"), "q")
		assert.True(t, m.done)
		assert.True(t, m.cancelled)
		assert.Empty(t, m.View())
	})
}
