// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/recruitflow/internal/flow"
	"github.com/jonathan/recruitflow/internal/gates"
	"github.com/jonathan/recruitflow/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintParsedResume outputs a human-readable summary of the parsed resume.
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", resume.ContactInfo.Email))
	if resume.ContactInfo.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", resume.ContactInfo.LinkedIn))
	}

	if len(resume.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(resume.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", resume.Skills[i]))
		}
		if len(resume.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Skills)-maxItemsToShow))
		}
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the candidate assessment with strengths and gaps.
func (p *Printer) PrintAnalysis(analysis *types.Analysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder

	summary := analysis.Summary
	if len(summary) > 50 {
		summary = summary[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Summary:  %s\n", summary))

	if len(analysis.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(analysis.Strengths), 3)
		for i := 0; i < count; i++ {
			s := analysis.Strengths[i]
			if len(s) > 50 {
				s = s[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
		if len(analysis.Strengths) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.Strengths)-3))
		}
	}

	if len(analysis.Gaps) > 0 {
		sb.WriteString("\nGaps:\n")
		count := min(len(analysis.Gaps), 3)
		for i := 0; i < count; i++ {
			g := analysis.Gaps[i]
			if len(g) > 50 {
				g = g[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", g))
		}
		if len(analysis.Gaps) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.Gaps)-3))
		}
	}

	p.printBox("CANDIDATE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReviewResult outputs each gate decision from the review chain.
func (p *Printer) PrintReviewResult(result gates.ChainResult) {
	var sb strings.Builder

	outcome := "REJECTED"
	switch {
	case result.Pending:
		outcome = "PENDING"
	case result.Approved:
		outcome = "APPROVED"
	}
	sb.WriteString(fmt.Sprintf("Chain:    %s (%s)\n", result.ChainID, result.Logic))
	sb.WriteString(fmt.Sprintf("Outcome:  %s\n\n", outcome))

	for i, r := range result.Results {
		reason := r.Reason
		if len(reason) > 45 {
			reason = reason[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", gateMark(r.Status), r.GateID))
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
		if i < len(result.Results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("REVIEW GATES", strings.TrimSuffix(sb.String(), "\n"))
}

func gateMark(status gates.Status) string {
	switch status {
	case gates.StatusApproved:
		return "✓"
	case gates.StatusPending:
		return "…"
	default:
		return "✗"
	}
}

// PrintFlowSummary outputs the final state of a flow.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFlowSummary(fc *flow.Context) {
	if fc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Flow:      %s\n", fc.FlowID))
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", fc.CandidateID))
	sb.WriteString(fmt.Sprintf("Job:       %s\n", fc.JobID))
	sb.WriteString(fmt.Sprintf("Stage:     %s\n", fc.Stage))
	sb.WriteString(fmt.Sprintf("Status:    %s\n", fc.Status))
	if fc.Score != nil {
		sb.WriteString(fmt.Sprintf("Score:     %.2f\n", *fc.Score))
	}

	if len(fc.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, e := range fc.Errors {
			if len(e) > 50 {
				e = e[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s\n", e))
		}
	}

	p.printBox("FLOW SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
