package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteReport renders the human-readable analysis report.
func (r *Result) WriteReport(w io.Writer) error {
	var b strings.Builder

	b.WriteString("ABSOLUTE DUPLICATE ANALYSIS RESULTS\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")

	for _, le := range r.LoadErrors {
		fmt.Fprintf(&b, "WARNING: %s\n", le.Error())
	}

	if len(r.Groups) == 0 {
		b.WriteString("No absolute duplicates found. All term names are unique.\n")
	} else {
		fmt.Fprintf(&b, "\nFound %d sets of absolute duplicates:\n", len(r.Groups))

		for i, group := range r.Groups {
			fmt.Fprintf(&b, "\nDUPLICATE SET %d: %q\n", i+1, group.Members[0].Record.Term.Term)
			b.WriteString(strings.Repeat("-", 60) + "\n")

			for j, m := range group.Members {
				status := "REMOVE"
				if j == 0 {
					status = "KEEP"
				}
				t := m.Record.Term
				fmt.Fprintf(&b, "%s %q\n", status, t.Term)
				fmt.Fprintf(&b, "   Location: %s\n", m.Record.Location())
				fmt.Fprintf(&b, "   Quality score: %.2f\n", m.QualityScore)
				fmt.Fprintf(&b, "   Category: %s\n", t.Category)
				fmt.Fprintf(&b, "   Aliases: %s\n", joinOrNone(t.Aliases))
				fmt.Fprintf(&b, "   Definition: %s\n", truncate(t.Definition, 100))
			}
		}

		b.WriteString("\nSUMMARY OF DUPLICATES TO REMOVE:\n")
		b.WriteString(strings.Repeat("=", 50) + "\n")
		for i, rm := range r.Removals {
			fmt.Fprintf(&b, "%d. Remove: %q\n", i+1, rm.Term)
			fmt.Fprintf(&b, "   Location: %s\n", rm.Location)
			fmt.Fprintf(&b, "   Keep instead: %q at %s\n", rm.KeepInstead, rm.KeepLocation)
			fmt.Fprintf(&b, "   Quality difference: %.2f\n", rm.QualityDifference)
		}
	}

	b.WriteString("\nFINAL STATISTICS:\n")
	fmt.Fprintf(&b, "Total terms analyzed: %d\n", r.TotalTerms)
	fmt.Fprintf(&b, "Duplicate sets found: %d\n", len(r.Groups))
	fmt.Fprintf(&b, "Terms to remove: %d\n", len(r.Removals))
	fmt.Fprintf(&b, "Final unique terms: %d\n", r.TotalTerms-len(r.Removals))

	_, err := io.WriteString(w, b.String())
	return err
}

type exportMember struct {
	Term         string  `json:"term"`
	Location     string  `json:"location"`
	ArrayIndex   int     `json:"arrayIndex"`
	QualityScore float64 `json:"qualityScore"`
}

type exportGroup struct {
	Keep   exportMember   `json:"keep"`
	Remove []exportMember `json:"remove"`
}

type quickRemoval struct {
	Term       string `json:"term"`
	File       string `json:"file"`
	ArrayIndex int    `json:"arrayIndex"`
}

type exportPayload struct {
	AnalysisDate         string         `json:"analysisDate"`
	TotalTermsAnalyzed   int            `json:"totalTermsAnalyzed"`
	DuplicateGroupsFound int            `json:"duplicateGroupsFound"`
	TermsToRemove        []*Removal     `json:"termsToRemove"`
	DuplicateGroups      []exportGroup  `json:"duplicateGroups"`
	QuickRemovalList     []quickRemoval `json:"quickRemovalList"`
}

// Export writes the structured removal-recommendation list as indented
// JSON, suitable for feeding a manual cleanup pass.
func (r *Result) Export(w io.Writer, now time.Time) error {
	payload := exportPayload{
		AnalysisDate:         now.UTC().Format(time.RFC3339),
		TotalTermsAnalyzed:   r.TotalTerms,
		DuplicateGroupsFound: len(r.Groups),
		TermsToRemove:        r.Removals,
		DuplicateGroups:      make([]exportGroup, 0, len(r.Groups)),
		QuickRemovalList:     make([]quickRemoval, 0, len(r.Removals)),
	}

	for _, group := range r.Groups {
		eg := exportGroup{Keep: toExportMember(group.Members[0])}
		for _, m := range group.Members[1:] {
			eg.Remove = append(eg.Remove, toExportMember(m))
		}
		payload.DuplicateGroups = append(payload.DuplicateGroups, eg)
	}
	for _, rm := range r.Removals {
		payload.QuickRemovalList = append(payload.QuickRemovalList, quickRemoval{
			Term:       rm.Term,
			File:       rm.File,
			ArrayIndex: rm.ArrayIndex,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func toExportMember(m *Member) exportMember {
	return exportMember{
		Term:         m.Record.Term.Term,
		Location:     m.Record.Location(),
		ArrayIndex:   m.Record.ArrayIndex,
		QualityScore: m.QualityScore,
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
