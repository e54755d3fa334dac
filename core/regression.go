package core

import (
	"math"

	"github.com/huangsam/lifespan/schema"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FitRegression fits total_attention = intercept + slope*peak by least squares.
//
// The system is solved through a thin SVD, keeping singular values above
// eps*max(n, 2) of the largest one, which yields the minimum-norm solution
// when the design is rank deficient (one row, or every peak identical).
// With no rows the coefficients are NaN. RSquared is NaN when total attention
// has no variance.
func FitRegression(records []schema.MetricsRecord) schema.RegressionResult {
	n := len(records)
	result := schema.RegressionResult{
		N:         n,
		Intercept: math.NaN(),
		Slope:     math.NaN(),
		RSquared:  math.NaN(),
	}
	if n == 0 {
		return result
	}

	design := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i, r := range records {
		design.Set(i, 0, 1)
		design.Set(i, 1, r.Peak)
		y[i] = r.TotalAttention
	}

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return result
	}
	rcond := epsilon * float64(max(n, 2))
	rank := svd.Rank(rcond)
	if rank < 1 {
		return result
	}

	var beta mat.VecDense
	svd.SolveVecTo(&beta, mat.NewVecDense(n, y), rank)
	result.Intercept = beta.AtVec(0)
	result.Slope = beta.AtVec(1)
	result.RSquared = rSquared(y, records, result.Intercept, result.Slope)
	return result
}

// epsilon is the float64 machine epsilon.
var epsilon = math.Nextafter(1, 2) - 1

func rSquared(y []float64, records []schema.MetricsRecord, intercept, slope float64) float64 {
	mean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i, r := range records {
		fitted := intercept + slope*r.Peak
		ssRes += (y[i] - fitted) * (y[i] - fitted)
		ssTot += (y[i] - mean) * (y[i] - mean)
	}
	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - ssRes/ssTot
}

// FitByRegime fits one regression per regime in reporting order, shock first.
func FitByRegime(records []schema.MetricsRecord) []schema.RegressionResult {
	results := make([]schema.RegressionResult, 0, len(schema.AllRegimes))
	for _, regime := range schema.AllRegimes {
		result := FitRegression(FilterRegime(records, regime))
		result.Regime = regime
		results = append(results, result)
	}
	return results
}
