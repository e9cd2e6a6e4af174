// Package report renders run summaries for the terminal. It owns all console
// styling; the runner packages only produce the numbers.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/logsieve/pkg/rules"
	"github.com/arthur-debert/logsieve/pkg/runner"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	countStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})
	errorStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})
)

// Renderer formats run output for one terminal format. Plain text output
// passes everything through unstyled.
type Renderer struct {
	format Format
}

// NewRenderer creates a renderer for the given format.
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.format == FormatText {
		return text
	}
	return s.Render(text)
}

// RuleSummary lists the configured destinations and their patterns, printed
// before a split run starts.
func (r *Renderer) RuleSummary(set *rules.Set) string {
	if set.Empty() {
		return r.style(mutedStyle, "No destinations configured; every block goes to its unmatched file.")
	}

	var b strings.Builder
	b.WriteString(r.style(titleStyle, "Destinations") + "\n")
	for _, dest := range set.Destinations {
		b.WriteString("  " + dest.Name)
		if dest.KeepAllBlocks {
			b.WriteString(r.style(mutedStyle, " (keeps all blocks)"))
		}
		b.WriteString("\n")
		for _, rule := range dest.Rules {
			line := "    - " + rule.Pattern
			if rule.Keep {
				line += " (keep)"
			}
			b.WriteString(r.style(mutedStyle, line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// PruneSummary lists the removal patterns, printed before a prune run starts.
func (r *Renderer) PruneSummary(list *rules.PruneList) string {
	if list.Empty() {
		return r.style(mutedStyle, "No removal patterns configured; files will be copied unchanged.")
	}

	var b strings.Builder
	b.WriteString(r.style(titleStyle, "Removal patterns") + "\n")
	for _, p := range list.Patterns {
		b.WriteString(r.style(mutedStyle, "  - "+p) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// SplitReport renders per-file results and the run totals of a split run.
func (r *Renderer) SplitReport(rep *runner.SplitReport, outDir string) string {
	var b strings.Builder

	for _, fr := range rep.Files {
		if fr.Err != nil {
			b.WriteString(fmt.Sprintf("  %s  %s\n", fr.Name,
				r.style(errorStyle, "skipped: "+fr.Err.Error())))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s  %s blocks read, %s extracted, %s unmatched\n",
			fr.Name,
			r.style(countStyle, fmt.Sprintf("%d", fr.Stats.BlocksRead)),
			r.style(countStyle, fmt.Sprintf("%d", fr.Stats.BlocksExtracted)),
			r.style(countStyle, fmt.Sprintf("%d", fr.Stats.BlocksUnmatched))))
	}

	b.WriteString("\n" + r.style(titleStyle, "Run summary") + "\n")
	b.WriteString(fmt.Sprintf("  Files processed: %d (skipped %d)\n", rep.Processed, rep.Skipped))
	b.WriteString(fmt.Sprintf("  Blocks read: %d\n", rep.Totals.BlocksRead))
	b.WriteString(fmt.Sprintf("  Blocks extracted to destinations: %d\n", rep.Totals.BlocksExtracted))
	b.WriteString(fmt.Sprintf("  Blocks written to unmatched files: %d\n", rep.Totals.BlocksUnmatched))
	b.WriteString(r.style(mutedStyle, fmt.Sprintf("  Output directory: %s", outDir)))
	return b.String()
}

// PruneReport renders per-file results and the run totals of a prune run,
// including the share of lines and blocks that survived.
func (r *Renderer) PruneReport(rep *runner.PruneReport, outDir string) string {
	var b strings.Builder

	for _, fr := range rep.Files {
		if fr.Err != nil {
			b.WriteString(fmt.Sprintf("  %s  %s\n", fr.Name,
				r.style(errorStyle, "skipped: "+fr.Err.Error())))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s  %s lines read, %s removed across %s blocks\n",
			fr.Name,
			r.style(countStyle, fmt.Sprintf("%d", fr.Stats.LinesRead)),
			r.style(countStyle, fmt.Sprintf("%d", fr.Stats.LinesRemoved)),
			r.style(countStyle, fmt.Sprintf("%d", fr.Stats.BlocksRemoved))))
	}

	b.WriteString("\n" + r.style(titleStyle, "Run summary") + "\n")
	b.WriteString(fmt.Sprintf("  Files processed: %d (skipped %d)\n", rep.Processed, rep.Skipped))
	b.WriteString(fmt.Sprintf("  Lines read: %d, removed: %d\n", rep.Totals.LinesRead, rep.Totals.LinesRemoved))
	b.WriteString(fmt.Sprintf("  Blocks processed: %d, removed: %d\n", rep.Totals.BlocksProcessed, rep.Totals.BlocksRemoved))
	b.WriteString(fmt.Sprintf("  Blocks remained: %.2f%%\n", rep.Totals.BlocksRemainedPercent()))
	b.WriteString(fmt.Sprintf("  Lines remained: %.2f%%\n", rep.Totals.LinesRemainedPercent()))
	b.WriteString(r.style(mutedStyle, fmt.Sprintf("  Output directory: %s", outDir)))
	return b.String()
}

// Confirm asks the user a yes/no question on the terminal. Used by the prune
// command before touching any file when --confirm is set.
func Confirm(prompt string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.Show(prompt)
}
