package matrix

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	m := Build(derivedInput(
		rec("r1", []string{"A", "B"}, []string{"X"}, ""),
		rec("r2", []string{"A"}, []string{"X"}, ""),
		rec("r3", []string{"B"}, []string{"Y"}, ""),
	))
	// buckets: A/X=2, A/Y=0, B/X=1, B/Y=1
	s := Summarize(m)

	if s.Rows != 2 || s.Columns != 2 || s.Buckets != 4 {
		t.Errorf("unexpected shape %+v", s)
	}
	if s.Empty != 1 {
		t.Errorf("Empty = %d, want 1", s.Empty)
	}
	if s.Placements != 4 {
		t.Errorf("Placements = %d, want 4", s.Placements)
	}
	if s.Records != 3 {
		t.Errorf("Records = %d, want 3", s.Records)
	}
	if s.MaxBucket != 2 {
		t.Errorf("MaxBucket = %d, want 2", s.MaxBucket)
	}
	if s.Mean != 1 {
		t.Errorf("Mean = %v, want 1", s.Mean)
	}
	// sample std dev of {2,0,1,1}
	if math.Abs(s.StdDev-math.Sqrt(2.0/3.0)) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, math.Sqrt(2.0/3.0))
	}
}

func TestSummarize_Degenerate(t *testing.T) {
	if s := Summarize(nil); s != (Stats{}) {
		t.Errorf("expected zero stats for nil matrix, got %+v", s)
	}

	m := Build(Input{Mode: LabelModeStatic, RowLabels: []string{"A"}})
	s := Summarize(m)
	if s.Rows != 1 || s.Columns != 0 || s.Buckets != 0 {
		t.Errorf("unexpected stats for row-only matrix %+v", s)
	}

	single := Build(derivedInput(rec("r1", []string{"A"}, []string{"X"}, "")))
	s = Summarize(single)
	if s.Mean != 1 || s.StdDev != 0 {
		t.Errorf("single bucket should have mean 1, std 0, got %+v", s)
	}
}
