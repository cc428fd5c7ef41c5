package replacement

// Compare runs every policy over the same input. The results are in the
// order of Policies().
func Compare(seq []int, frameCount int, opts ...Option) []Result {
	results := make([]Result, 0, len(Policies()))
	for _, p := range Policies() {
		results = append(results, Simulate(p, seq, frameCount, opts...))
	}

	return results
}

// BestPolicy returns the policy with the fewest faults. Ties are resolved in
// favor of the earlier result. It returns false if results is empty.
func BestPolicy(results []Result) (Policy, bool) {
	if len(results) == 0 {
		return 0, false
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.TotalPageFaults < best.TotalPageFaults {
			best = r
		}
	}

	return best.Policy, true
}

// An Anomaly records a frame count at which adding one more frame increased
// the number of faults.
type Anomaly struct {
	Frames     int `json:"frames"`
	Faults     int `json:"faults"`
	NextFaults int `json:"nextFaults"`
}

// FaultCurve returns the number of faults of policy p for 1 to maxFrames
// frames. Element i holds the faults with i+1 frames.
func FaultCurve(p Policy, seq []int, maxFrames int, opts ...Option) []int {
	frameCountMustBePositive(maxFrames)

	curve := make([]int, 0, maxFrames)
	for n := 1; n <= maxFrames; n++ {
		curve = append(curve, Simulate(p, seq, n, opts...).TotalPageFaults)
	}

	return curve
}

// BeladyAnomaly reports every frame count n < maxFrames where policy p
// faults more with n+1 frames than with n.
func BeladyAnomaly(p Policy, seq []int, maxFrames int, opts ...Option) []Anomaly {
	return AnomaliesIn(FaultCurve(p, seq, maxFrames, opts...))
}

// AnomaliesIn finds the anomalies in a curve produced by FaultCurve.
func AnomaliesIn(curve []int) []Anomaly {
	var anomalies []Anomaly
	for i := 0; i+1 < len(curve); i++ {
		if curve[i+1] > curve[i] {
			anomalies = append(anomalies, Anomaly{
				Frames:     i + 1,
				Faults:     curve[i],
				NextFaults: curve[i+1],
			})
		}
	}

	return anomalies
}
