// Package metrics summarizes result columns for reports and tables.
package metrics

import (
	"sort"

	"github.com/san-kum/quantsim/internal/quantity"
)

// ColumnStats are per-column summary statistics of a result.
type ColumnStats struct {
	Min   float64
	Max   float64
	Mean  float64
	Final float64
	// Drift is |final-initial| relative to |initial|, or the absolute
	// difference when the column starts at zero. Near zero for
	// conserved quantities.
	Drift float64
}

// Summarize computes stats for every column of a result. Empty columns
// are skipped.
func Summarize(result quantity.Frame) map[string]ColumnStats {
	stats := make(map[string]ColumnStats, len(result))
	for name, col := range result {
		if len(col) == 0 {
			continue
		}
		s := ColumnStats{Min: col[0], Max: col[0], Final: col[len(col)-1]}
		sum := 0.0
		for _, v := range col {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
			sum += v
		}
		s.Mean = sum / float64(len(col))

		diff := s.Final - col[0]
		if diff < 0 {
			diff = -diff
		}
		if initial := col[0]; initial != 0 {
			if initial < 0 {
				initial = -initial
			}
			s.Drift = diff / initial
		} else {
			s.Drift = diff
		}
		stats[name] = s
	}
	return stats
}

// Names returns the sorted column names of a summary.
func Names(stats map[string]ColumnStats) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
