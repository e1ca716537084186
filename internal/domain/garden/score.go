package garden

// project plays out a pick without committing it: simulate the effect,
// attach the lotus as fundamental when it is one and the slot is free, then
// run the enter-phase application. Scoring a fundamental this way is what
// gives it a non-zero score.
func (e Engine) project(v Vision, l Lotus, stochastic bool) Vision {
	next := e.Simulate(v, l.Effect)
	if l.Fundamental && next.Fundamental == nil {
		if attached, err := next.WithFundamental(l); err == nil {
			next = attached
		}
	}
	return e.ApplyFundamental(next, stochastic)
}

// Score is the deterministic marginal value of picking the lotus:
// value(after) - value(before).
func (e Engine) Score(v Vision, l Lotus, w Weights) float64 {
	before := Value(v, w)
	after := Value(e.project(v, l, false), w)
	return after - before
}

// ScoreMonteCarlo repeats the stochastic projection and averages the after
// values. Simulation itself is deterministic per call; only the enter-phase
// application varies across trials.
func (e Engine) ScoreMonteCarlo(v Vision, l Lotus, w Weights, trials int) float64 {
	if trials <= 0 {
		trials = DefaultTrials
	}
	before := Value(v, w)
	sum := 0.0
	for i := 0; i < trials; i++ {
		sum += Value(e.project(v, l, true), w)
	}
	return sum/float64(trials) - before
}
