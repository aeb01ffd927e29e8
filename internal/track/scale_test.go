package track

import "testing"

func TestNewGlobalScale(t *testing.T) {
	cases := []struct {
		name string
		pool []int
		want GlobalScale
	}{
		{"empty", nil, DefaultScale},
		{"zeros only", []int{0, 0}, DefaultScale},
		{"single", []int{0, 4}, GlobalScale{Min: 4, Max: 4}},
		{"range", []int{3, 0, 9, 5}, GlobalScale{Min: 3, Max: 9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewGlobalScale(tc.pool); got != tc.want {
				t.Fatalf("NewGlobalScale(%v) = %+v, want %+v", tc.pool, got, tc.want)
			}
		})
	}
}

func TestGlobalScaleSize(t *testing.T) {
	v := VisualRange{Min: 70, Max: 400}
	s := GlobalScale{Min: 1, Max: 12}
	cases := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 70},
		{12, 400},
		{2, 100},
		{6, 220},
	}
	for _, tc := range cases {
		if got := s.Size(tc.count, v); got != tc.want {
			t.Fatalf("Size(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

func TestGlobalScaleSizeDegenerate(t *testing.T) {
	v := VisualRange{Min: 70, Max: 400}
	s := GlobalScale{Min: 3, Max: 3}
	for _, n := range []int{1, 3, 7} {
		if got := s.Size(n, v); got != 400 {
			t.Fatalf("Size(%d) = %d, want 400", n, got)
		}
	}
	if got := s.Size(0, v); got != 0 {
		t.Fatalf("Size(0) = %d, want 0", got)
	}
}

func TestGlobalScaleSizeRounds(t *testing.T) {
	v := VisualRange{Min: 0, Max: 10}
	s := GlobalScale{Min: 1, Max: 4}
	// 2 maps to 10/3 = 3.33, 3 maps to 6.67.
	if got := s.Size(2, v); got != 3 {
		t.Fatalf("Size(2) = %d, want 3", got)
	}
	if got := s.Size(3, v); got != 7 {
		t.Fatalf("Size(3) = %d, want 7", got)
	}
}
