package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// Color styles for table format
var (
	nsBg               = color.BgYellow
	chainBg            = color.BgCyan
	nsHeader           = color.New(nsBg, color.FgBlack)
	nsHeaderBold       = color.New(nsBg, color.FgBlack, color.Bold)
	chainHeader        = color.New(chainBg, color.FgBlack)
	chainHeaderBold    = color.New(chainBg, color.FgBlack, color.Bold)
	nameStyle          = color.New(color.FgGreen, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	tagsStyle          = color.New(color.FgCyan)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	ownerPrefixStyle   = color.New(color.Faint)
)

type TableData [][]string

// ChainNamer maps a chain ID to a display name, empty when unknown
type ChainNamer func(chainID uint64) string

// DeploymentsRenderer renders deployment lists as formatted tables with tree-style layout
type DeploymentsRenderer struct {
	out        io.Writer
	chainNamer ChainNamer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, chainNamer ChainNamer) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:        out,
		chainNamer: chainNamer,
	}
}

// RenderDeploymentList renders deployments in the tree-style format
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	r.displayTableFormat(result.Deployments)
	return nil
}

// displayTableFormat shows deployments grouped by namespace then chain
func (r *DeploymentsRenderer) displayTableFormat(records []*models.DeploymentRecord) {
	groups := make(map[string]map[uint64][]*models.DeploymentRecord)
	for _, rec := range records {
		if groups[rec.Namespace] == nil {
			groups[rec.Namespace] = make(map[uint64][]*models.DeploymentRecord)
		}
		groups[rec.Namespace][rec.ChainID] = append(groups[rec.Namespace][rec.ChainID], rec)
	}

	namespaces := make([]string, 0, len(groups))
	for ns := range groups {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	// Build all tables first so every section shares column widths
	var allTables []TableData
	for _, ns := range namespaces {
		for _, chainID := range sortedChainIDs(groups[ns]) {
			settled, pending := splitPending(groups[ns][chainID])
			if len(settled) > 0 {
				allTables = append(allTables, r.buildDeploymentTable(settled))
			}
			if len(pending) > 0 {
				allTables = append(allTables, r.buildDeploymentTable(pending))
			}
		}
	}
	globalColumnWidths := calculateTableColumnWidths(allTables)

	for _, ns := range namespaces {
		nsLabel := fmt.Sprintf("%-12s", "namespace:")
		nsValue := fmt.Sprintf("%-30s", strings.ToUpper(ns))
		fmt.Fprintln(r.out, nsHeader.Sprintf("   ◎ %s %s", nsLabel, nsHeaderBold.Sprint(nsValue)))

		chainIDs := sortedChainIDs(groups[ns])
		for netIdx, chainID := range chainIDs {
			isLastNetwork := netIdx == len(chainIDs)-1
			treePrefix := "├─"
			continuationPrefix := "│ "
			if isLastNetwork {
				treePrefix = "└─"
				continuationPrefix = "  "
			}

			chainLabel := fmt.Sprintf("%-12s", "chain:")
			chainValue := fmt.Sprintf("%-30s", r.chainLabel(chainID))
			fmt.Fprintf(r.out, "%s%s%s\n",
				treePrefix,
				chainHeader.Sprintf(" ⛓ %s ", chainLabel),
				chainHeaderBold.Sprint(chainValue))
			fmt.Fprintln(r.out, continuationPrefix)

			settled, pending := splitPending(groups[ns][chainID])
			sectionsDisplayed := 0
			for _, section := range []struct {
				title   string
				records []*models.DeploymentRecord
			}{
				{"CONTRACTS", settled},
				{"OWNERSHIP PENDING", pending},
			} {
				if len(section.records) == 0 {
					continue
				}
				if sectionsDisplayed > 0 {
					fmt.Fprintln(r.out, continuationPrefix)
				}
				fmt.Fprintf(r.out, "%s%s\n", continuationPrefix, sectionHeaderStyle.Sprint(section.title))
				fmt.Fprint(r.out, renderTableWithWidths(r.buildDeploymentTable(section.records), globalColumnWidths, continuationPrefix))
				fmt.Fprintln(r.out)
				sectionsDisplayed++
			}

			if !isLastNetwork {
				fmt.Fprintln(r.out, continuationPrefix)
			} else {
				fmt.Fprintln(r.out)
			}
		}
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", len(records))
}

func (r *DeploymentsRenderer) chainLabel(chainID uint64) string {
	if r.chainNamer != nil {
		if name := r.chainNamer(chainID); name != "" {
			return fmt.Sprintf("%d (%s)", chainID, name)
		}
	}
	return fmt.Sprintf("%d", chainID)
}

// buildDeploymentTable creates a TableData for a list of records
func (r *DeploymentsRenderer) buildDeploymentTable(records []*models.DeploymentRecord) TableData {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Name == records[j].Name {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].Name < records[j].Name
	})

	tableData := make(TableData, 0, len(records))
	for _, rec := range records {
		nameCell := nameStyle.Sprint(rec.GetDisplayName())
		if extra := extraTags(rec); extra != "" {
			nameCell += " " + tagsStyle.Sprintf("(%s)", extra)
		}

		tableData = append(tableData, []string{
			nameCell,
			addressStyle.Sprint(rec.Address),
			FormatState(rec.State),
			timestampStyle.Sprint(rec.CreatedAt.Format("2006-01-02 15:04:05")),
		})

		if rec.Owner != "" {
			tableData = append(tableData, []string{
				ownerPrefixStyle.Sprintf("└─ owner %s", rec.Owner),
				"",
				"",
				"",
			})
		}
	}

	return tableData
}

// extraTags returns the first tag that differs from the record name
func extraTags(rec *models.DeploymentRecord) string {
	for _, tag := range rec.Tags {
		if tag != rec.Name {
			return tag
		}
	}
	return ""
}

func splitPending(records []*models.DeploymentRecord) (settled, pending []*models.DeploymentRecord) {
	for _, rec := range records {
		if rec.State == models.StateOwnershipPending {
			pending = append(pending, rec)
		} else {
			settled = append(settled, rec)
		}
	}
	return settled, pending
}

func sortedChainIDs(chains map[uint64][]*models.DeploymentRecord) []uint64 {
	chainIDs := make([]uint64, 0, len(chains))
	for chainID := range chains {
		chainIDs = append(chainIDs, chainID)
	}
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })
	return chainIDs
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += 2 + len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	if len(tables) == 0 {
		return nil
	}

	maxCols := 0
	for _, table := range tables {
		for _, row := range table {
			if len(row) > maxCols {
				maxCols = len(row)
			}
		}
	}

	widths := make([]int, maxCols)
	for _, table := range tables {
		for _, row := range table {
			for colIdx, cell := range row {
				// Strip ANSI codes for width calculation
				cellWidth := len([]rune(stripAnsiCodes(cell)))
				if cellWidth > widths[colIdx] {
					widths[colIdx] = cellWidth
				}
			}
		}
	}

	return widths
}
