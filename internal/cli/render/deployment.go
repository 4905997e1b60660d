package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// DeploymentRenderer renders detailed information about a single deployment record
type DeploymentRenderer struct {
	out        io.Writer
	chainNamer ChainNamer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, chainNamer ChainNamer) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:        out,
		chainNamer: chainNamer,
	}
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(rec *models.DeploymentRecord) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", rec.ID)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Name: %s\n", color.New(color.FgYellow).Sprint(rec.Name))
	if rec.Contract != "" && rec.Contract != rec.Name {
		fmt.Fprintf(r.out, "  Contract: %s\n", rec.Contract)
	}
	fmt.Fprintf(r.out, "  Address: %s\n", rec.Address)
	fmt.Fprintf(r.out, "  Namespace: %s\n", rec.Namespace)

	network := fmt.Sprintf("%d", rec.ChainID)
	if r.chainNamer != nil {
		if name := r.chainNamer(rec.ChainID); name != "" {
			network = fmt.Sprintf("%d (%s)", rec.ChainID, name)
		}
	}
	fmt.Fprintf(r.out, "  Network: %s\n", network)

	if len(rec.Tags) > 0 {
		fmt.Fprintf(r.out, "  Tags: %s\n", color.New(color.FgCyan).Sprint(strings.Join(rec.Tags, ", ")))
	}

	fmt.Fprintln(r.out, "\nOwnership:")
	fmt.Fprintf(r.out, "  State: %s\n", FormatState(rec.State))
	if rec.Owner != "" {
		fmt.Fprintf(r.out, "  Owner: %s\n", rec.Owner)
	}
	if rec.State == models.StateOwnershipPending {
		fmt.Fprintln(r.out, "  "+FormatWarning("a transfer was started but not confirmed, the next run will retry it"))
	}

	fmt.Fprintln(r.out, "\nTransaction:")
	if rec.TxHash != "" {
		fmt.Fprintf(r.out, "  Hash: %s\n", rec.TxHash)
	}
	if rec.Deployer != "" {
		fmt.Fprintf(r.out, "  Deployer: %s\n", rec.Deployer)
	}

	if len(rec.Args) > 0 {
		fmt.Fprintln(r.out, "\nConstructor Arguments:")
		for i, arg := range rec.Args {
			fmt.Fprintf(r.out, "  [%d] %s\n", i, arg)
		}
	}

	fmt.Fprintln(r.out, "\nTimestamps:")
	fmt.Fprintf(r.out, "  Created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.out, "  Updated: %s\n", rec.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}
