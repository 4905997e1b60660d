package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// ConfigRenderer renders the resolved session and changes to saved defaults
type ConfigRenderer struct {
	out io.Writer
}

func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// RenderConfig prints what a command run here would use
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	faint := color.New(color.Faint)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false

	t.AppendRow(table.Row{"Namespace", result.Namespace + savedMarker(result.Defaults, config.KeyNamespace, result.Namespace)})

	if n := result.Network; n != nil {
		network := fmt.Sprintf("%s - Chain ID: %d", n.Name, n.ChainID)
		if result.ChainName != "" {
			network += faint.Sprintf(" (%s)", result.ChainName)
		}
		if n.Dev {
			network += " " + color.New(color.FgYellow).Sprint("[dev]")
		}
		t.AppendRow(table.Row{"Network", network + savedMarker(result.Defaults, config.KeyNetwork, n.Name)})
		t.AppendRow(table.Row{"Address tables", coverage(result.CoveredTables, result.MissingTables)})
	} else {
		t.AppendRow(table.Row{"Network", faint.Sprint("(not set, pass --network)")})
	}

	t.AppendRow(table.Row{"Registry", backend(result.Registry)})
	t.AppendRow(table.Row{"Lock", backend(result.Lock)})
	fmt.Fprintln(r.out, t.Render())

	fmt.Fprintln(r.out)
	if result.DefaultsSaved {
		fmt.Fprintf(r.out, "📁 defaults: %s\n", relativePath(result.DefaultsPath))
	} else {
		fmt.Fprintf(r.out, "📁 no saved defaults, use 'zapdeploy config set' to write %s\n", relativePath(result.DefaultsPath))
	}
	return nil
}

// RenderSet confirms a saved default
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	value := result.Value
	if n := result.Network; n != nil {
		value = fmt.Sprintf("%s (chain %d)", n.Name, n.ChainID)
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s default set to %s", result.Key, value)))
	fmt.Fprintf(r.out, "📁 saved to %s\n", relativePath(result.Path))
	return nil
}

// RenderRemove confirms a cleared default and says what replaces it
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch {
	case result.RemovedValue == "":
		fmt.Fprintf(r.out, "No %s default was saved\n", result.Key)
	case result.Key == config.KeyNamespace:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("cleared namespace %s, runs use %q", result.RemovedValue, config.DefaultNamespace)))
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("cleared network %s, commands now need --network", result.RemovedValue)))
	}
	fmt.Fprintf(r.out, "📁 saved to %s\n", relativePath(result.Path))
	return nil
}

// savedMarker notes whether the active value came from the defaults file
func savedMarker(defaults *config.Defaults, key config.DefaultKey, active string) string {
	if defaults == nil {
		return ""
	}
	saved := defaults.Get(key)
	switch {
	case saved == "":
		return ""
	case strings.EqualFold(saved, active):
		return color.New(color.Faint).Sprint(" [saved]")
	default:
		return color.New(color.Faint).Sprintf(" [overrides saved %s]", saved)
	}
}

func coverage(covered, missing []string) string {
	text := "none"
	if len(covered) > 0 {
		text = strings.Join(covered, ", ")
	}
	if len(missing) > 0 {
		text += color.New(color.FgYellow).Sprintf(" (no entry: %s)", strings.Join(missing, ", "))
	}
	return text
}

func backend(info usecase.BackendInfo) string {
	if info.Location == "" || info.Location == info.Kind {
		return info.Kind
	}
	location := info.Location
	if filepath.IsAbs(location) {
		location = relativePath(location)
	}
	return fmt.Sprintf("%s %s", info.Kind, color.New(color.Faint).Sprint(location))
}

func relativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
