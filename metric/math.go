package metric

import "math"

// logSumExp computes log(sum(exp(xs))) with the max-subtraction trick to
// avoid overflow on large logits.
func logSumExp(xs []float64) float64 {
	maxVal := math.Inf(-1)
	for _, x := range xs {
		if x > maxVal {
			maxVal = x
		}
	}
	if math.IsInf(maxVal, -1) {
		return maxVal
	}

	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - maxVal)
	}

	return maxVal + math.Log(sum)
}

// nll returns the negative log-likelihood of the target class under the
// softmax of the logits row: logSumExp(row) - row[target].
func nll(row []float64, target int) float64 {
	return logSumExp(row) - row[target]
}

// argmax returns the index of the largest value; ties resolve to the lowest
// index, matching the usual tensor argmax convention.
func argmax(row []float64) int {
	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}

	return best
}
