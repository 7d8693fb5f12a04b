package services

import (
	"math"
	"testing"
)

func TestFoldAverageFirstRating(t *testing.T) {
	if got := foldAverage(0, 0, 4.5); got != 4.5 {
		t.Fatalf("foldAverage(0, 0, 4.5) = %v, want 4.5", got)
	}
}

func TestFoldAverageRoundsToOneDecimal(t *testing.T) {
	// (4*1 + 3) / 2 = 3.5; (3.5*2 + 4.5) / 3 = 3.8333... -> 3.8
	got := foldAverage(3.5, 2, 4.5)
	if got != 3.8 {
		t.Fatalf("foldAverage(3.5, 2, 4.5) = %v, want 3.8", got)
	}
}

func TestFoldAverageTracksMean(t *testing.T) {
	// Submitting ratings r_1..r_n to an initially empty business keeps the
	// stored value within rounding distance of the true mean.
	values := []float64{4.5, 3.0, 5.0, 2.5, 4.0, 1.5, 3.5}

	var stored float64
	var sum float64
	for i, v := range values {
		stored = foldAverage(stored, i, v)
		sum += v

		mean := sum / float64(i+1)
		if math.Abs(stored-mean) > 0.1 {
			t.Fatalf("after %d ratings stored average %v drifted from mean %v", i+1, stored, mean)
		}
	}
}

func TestValidRatingValue(t *testing.T) {
	for v := 1; v <= 5; v++ {
		if !validRatingValue(v) {
			t.Fatalf("expected %d to be a valid rating", v)
		}
	}
	for _, v := range []int{0, -1, 6, 100} {
		if validRatingValue(v) {
			t.Fatalf("expected %d to be rejected", v)
		}
	}
}
