package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type Correlation struct {
	R float64 `json:"r"`
	P float64 `json:"p"` // two-sided
	N int     `json:"n"`
}

// Pearson returns the correlation coefficient of x and y with its two-sided
// p-value from Student's t with n-2 degrees of freedom.
func Pearson(x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("pearson: length mismatch %d != %d", len(x), len(y))
	}
	n := len(x)
	if n < 3 {
		return Correlation{}, fmt.Errorf("%w: pearson needs 3 observations, got %d", ErrDegenerateInput, n)
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return Correlation{}, fmt.Errorf("%w: constant input", ErrDegenerateInput)
	}
	r = math.Max(-1, math.Min(1, r))

	if math.Abs(r) == 1 {
		return Correlation{R: r, P: 0, N: n}, nil
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	return Correlation{R: r, P: math.Min(1, p), N: n}, nil
}
