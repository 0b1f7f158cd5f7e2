package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/variantsmith/mutscan/pkg/data"
)

// WriteMarkdown renders a finished run as a Markdown summary: run
// parameters followed by the ranked candidate table.
func WriteMarkdown(w io.Writer, run *data.Run, candidates []*data.CandidateRecord) error {
	if run == nil {
		return errors.New("run required")
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Predictive Mutant Design - Run %d\n\n", run.ID))
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", run.Created))

	b.WriteString("## Parameters\n\n")
	b.WriteString(fmt.Sprintf("- Anchor mutation: **%s**\n", run.Anchor))
	b.WriteString(fmt.Sprintf("- Candidates sampled: %d\n", run.Candidates))
	b.WriteString(fmt.Sprintf("- Mutation count range: %d-%d\n", run.SizeMin, run.SizeMax))
	b.WriteString(fmt.Sprintf("- Ensemble folds: %d\n", run.Folds))
	b.WriteString(fmt.Sprintf("- Seed: %d\n\n", run.Seed))

	b.WriteString(fmt.Sprintf("## Top %d Candidates\n\n", len(candidates)))
	b.WriteString("| Rank | Mutant ID | Mutations | Avg Score | Std Dev |\n")
	b.WriteString("|------|-----------|-----------|-----------|--------|\n")
	for _, c := range candidates {
		id := c.MutantID
		if c.Undersized {
			id += " (undersized)"
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %.4f | %.4f |\n",
			c.Position, id, strings.Join(c.Mutations, ", "), c.AvgScore, c.StdDev))
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}
