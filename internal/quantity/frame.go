package quantity

import "sort"

// Frame maps quantity names to equal-length value columns. Driver tables
// and simulation results are both Frames; a result is treated as
// immutable once returned.
type Frame map[string][]float64

// Duration returns the common column length, or zero for an empty frame.
func (f Frame) Duration() int {
	for _, col := range f {
		return len(col)
	}
	return 0
}

// Columns returns the column names in sorted order.
func (f Frame) Columns() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Row copies row i into a Store. It panics if i is out of range, like
// the slice indexing it wraps.
func (f Frame) Row(i int) Store {
	row := make(Store, len(f))
	for name, col := range f {
		row[name] = col[i]
	}
	return row
}

func (f Frame) InitialRow() Store {
	return f.Row(0)
}

func (f Frame) FinalRow() Store {
	return f.Row(f.Duration() - 1)
}

func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	for name, col := range f {
		c := make([]float64, len(col))
		copy(c, col)
		out[name] = c
	}
	return out
}

// Validate checks that the frame has at least one column and that all
// columns share one length.
func (f Frame) Validate() error {
	if len(f) == 0 {
		return ErrNoColumns
	}
	n := -1
	for _, col := range f {
		if n == -1 {
			n = len(col)
			continue
		}
		if len(col) != n {
			return ErrRaggedFrame
		}
	}
	return nil
}
