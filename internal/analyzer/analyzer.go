// Package analyzer implements the offline duplicate analysis over raw term
// datasets. It groups records by exact (case-insensitive, trimmed) name
// match, ranks each group by a quality heuristic and recommends which copy
// to keep. The analyzer never mutates its input; it only reports.
package analyzer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"glosskeep/internal/model"
)

// Record is one term instance together with its source provenance. The
// provenance is only used for human-readable reporting.
type Record struct {
	Term       *model.Term
	Source     string // base file name, "direct" for in-memory input
	SourcePath string
	ArrayIndex int
}

// Location renders the record's provenance, e.g. "terms.json (index 12)".
func (r *Record) Location() string {
	return fmt.Sprintf("%s (index %d)", r.Source, r.ArrayIndex)
}

// Member is a record inside a duplicate group, annotated with its score.
type Member struct {
	Record       *Record
	QualityScore float64
}

// Group is a set of two or more records sharing a normalized term name.
// Members are sorted by quality score descending; Members[0] is the keep
// recommendation.
type Group struct {
	Name    string
	Members []*Member
}

// Removal is one remove recommendation with the keeper it loses to.
type Removal struct {
	Term              string  `json:"term"`
	File              string  `json:"file"`
	ArrayIndex        int     `json:"arrayIndex"`
	Location          string  `json:"location"`
	QualityScore      float64 `json:"qualityScore"`
	KeepInstead       string  `json:"keepInstead"`
	KeepLocation      string  `json:"keepLocation"`
	QualityDifference float64 `json:"qualityDifference"`
}

// LoadError records a per-file read or parse failure. Failures are
// non-fatal: the analysis continues over the remaining files.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Result holds a completed analysis.
type Result struct {
	TotalTerms int
	Groups     []*Group
	Removals   []*Removal
	LoadErrors []LoadError
}

// LoadFiles reads one or more JSON arrays of term records. A file that
// cannot be read or parsed is reported and skipped.
func LoadFiles(paths []string, logger *slog.Logger) ([]*Record, []LoadError) {
	if logger == nil {
		logger = slog.Default()
	}

	var records []*Record
	var loadErrs []LoadError

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Failed to read terms file", slog.String("path", path), slog.Any("error", err))
			loadErrs = append(loadErrs, LoadError{Path: path, Err: err})
			continue
		}

		var terms []*model.Term
		if err := json.Unmarshal(data, &terms); err != nil {
			logger.Error("Failed to parse terms file", slog.String("path", path), slog.Any("error", err))
			loadErrs = append(loadErrs, LoadError{Path: path, Err: err})
			continue
		}

		base := filepath.Base(path)
		for i, t := range terms {
			t.Normalize()
			records = append(records, &Record{
				Term:       t,
				Source:     base,
				SourcePath: path,
				ArrayIndex: i,
			})
		}
		logger.Info("Loaded terms", slog.String("path", path), slog.Int("count", len(terms)))
	}

	return records, loadErrs
}

// QualityScore computes the heuristic used to pick which duplicate to keep.
// Longer definitions, more aliases/related/tags/references and coverage of
// core AI vocabulary all raise the score; very short definitions are
// penalized.
func QualityScore(t *model.Term) float64 {
	score := 0.0

	defLen := len(t.Definition)
	score += min(float64(defLen)/200, 2)

	score += float64(len(t.Aliases)) * 0.3
	score += float64(len(t.Related)) * 0.2
	score += float64(len(t.Tags)) * 0.1
	score += float64(len(t.References)) * 0.5

	if strings.Contains(t.Definition, "machine learning") ||
		strings.Contains(t.Definition, "artificial intelligence") ||
		strings.Contains(t.Definition, "AI") {
		score += 0.5
	}

	if defLen < 100 {
		score -= 1
	}

	return score
}

// groupKey normalizes a term name for exact-duplicate grouping. Internal
// whitespace and punctuation are left alone: "GPU-accelerated" never groups
// with "GPU".
func groupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Analyze groups records by normalized name and builds keep/remove
// recommendations for every group with more than one member. Group order
// follows first encounter in the input; within a group, score ties keep
// input order.
func Analyze(records []*Record) *Result {
	result := &Result{TotalTerms: len(records)}

	byName := make(map[string][]*Member)
	var order []string
	for _, rec := range records {
		key := groupKey(rec.Term.Term)
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], &Member{
			Record:       rec,
			QualityScore: QualityScore(rec.Term),
		})
	}

	for _, key := range order {
		members := byName[key]
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].QualityScore > members[j].QualityScore
		})
		result.Groups = append(result.Groups, &Group{Name: key, Members: members})
	}

	for _, group := range result.Groups {
		keep := group.Members[0]
		for _, m := range group.Members[1:] {
			result.Removals = append(result.Removals, &Removal{
				Term:              m.Record.Term.Term,
				File:              m.Record.SourcePath,
				ArrayIndex:        m.Record.ArrayIndex,
				Location:          m.Record.Location(),
				QualityScore:      m.QualityScore,
				KeepInstead:       keep.Record.Term.Term,
				KeepLocation:      keep.Record.Location(),
				QualityDifference: keep.QualityScore - m.QualityScore,
			})
		}
	}

	return result
}

// MissingRelated returns every name that appears in some record's related
// list but is not itself a defined term. The result is sorted; no scoring
// is involved.
func MissingRelated(records []*Record) []string {
	defined := make(map[string]struct{}, len(records))
	for _, rec := range records {
		defined[rec.Term.Term] = struct{}{}
	}

	missing := make(map[string]struct{})
	for _, rec := range records {
		for _, name := range rec.Term.Related {
			if _, ok := defined[name]; !ok {
				missing[name] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(missing))
	for name := range missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefinedTerms returns the sorted unique display names of all records.
func DefinedTerms(records []*Record) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, rec := range records {
		if _, ok := seen[rec.Term.Term]; ok {
			continue
		}
		seen[rec.Term.Term] = struct{}{}
		out = append(out, rec.Term.Term)
	}
	sort.Strings(out)
	return out
}
