package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes how records spread over the buckets
type Stats struct {
	Rows       int
	Columns    int
	Buckets    int
	Empty      int
	Placements int
	Records    int // distinct records placed in at least one bucket
	MaxBucket  int
	Mean       float64
	StdDev     float64
}

// Summarize computes bucket statistics for the status bar and `mxv cells`
func Summarize(m *Matrix) Stats {
	if m.IsEmpty() {
		s := Stats{}
		if m != nil {
			s.Rows, s.Columns = len(m.Rows), len(m.Columns)
		}
		return s
	}

	s := Stats{Rows: len(m.Rows), Columns: len(m.Columns)}
	sizes := make([]float64, 0, len(m.Rows)*len(m.Columns))
	distinct := make(map[string]struct{})
	for _, row := range m.Rows {
		for _, col := range m.Columns {
			bucket := m.Cells[row][col]
			sizes = append(sizes, float64(len(bucket)))
			if len(bucket) == 0 {
				s.Empty++
			}
			for _, rec := range bucket {
				distinct[rec.ID()] = struct{}{}
			}
		}
	}

	s.Buckets = len(sizes)
	s.Placements = int(floats.Sum(sizes))
	s.Records = len(distinct)
	s.MaxBucket = int(floats.Max(sizes))
	if len(sizes) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(sizes, nil)
	} else {
		s.Mean = sizes[0]
	}
	return s
}
