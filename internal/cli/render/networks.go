package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// RenderNetworksList renders the configured networks and the address tables covering them
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in zapdeploy.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		if network.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", network.Name, network.Error)
			continue
		}
		line := fmt.Sprintf("  ✅ %s - Chain ID: %d", network.Name, network.ChainID)
		if network.ChainName != "" {
			line += color.New(color.Faint).Sprintf(" (%s)", network.ChainName)
		}
		if network.Dev {
			line += " " + color.New(color.FgYellow).Sprint("[dev]")
		}
		fmt.Fprintln(r.out, line)
	}

	if len(result.Tables) == 0 {
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "📖 Address Tables:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Table", "Chains"})
	for _, coverage := range result.Tables {
		t.AppendRow(table.Row{coverage.Name, strings.Join(coverage.ChainIDs, ", ")})
	}
	fmt.Fprintln(r.out, t.Render())

	return nil
}
