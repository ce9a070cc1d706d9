package hashbench

import "math"

// Summary defines a public type used by hashbench APIs.
//
// Summary instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Summary struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// Summarize describes the summarize operation and its observable behavior.
//
// Summarize may return an error when input validation, dependency calls, or security checks fail.
// Summarize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// StdDev is the population standard deviation (divisor N, no Bessel
// correction); downstream consumers depend on this exact divisor.
func Summarize(series []float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrEmptySeries
	}

	s := Summary{
		Min: series[0],
		Max: series[0],
	}

	var sum float64
	for _, v := range series {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(series))

	var sq float64
	for _, v := range series {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(series)))

	return s, nil
}
