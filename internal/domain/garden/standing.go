package garden

import "math"

// ApplyFundamental re-applies the vision's attached fundamental, the way it
// fires on entering a nightmare. No-op (still a fresh copy) when nothing is
// attached or the attached effect has no enter-phase behavior.
//
// ChanceUpgradeOnEnter deliberately runs two different processes: stochastic
// mode draws one shared trial for the whole target set, deterministic mode
// draws one trial per bubble. Monte Carlo averaging depends on which mode
// fed it, so the asymmetry must stay.
func (e Engine) ApplyFundamental(v Vision, stochastic bool) Vision {
	out := v.Clone()
	if v.Fundamental == nil {
		return out
	}
	switch eff := v.Fundamental.Effect.(type) {
	case MultiplyOnEnterEffect:
		e.applyMultiplyOnEnter(&out, eff)
	case ChanceUpgradeOnEnterEffect:
		e.applyChanceUpgradeOnEnter(&out, eff, stochastic)
	default:
		// reactive triggers and irregular fundamentals are not evaluated
	}
	return out
}

// applyMultiplyOnEnter appends floor(matching × multiplier) rainbow bubbles.
// Unlike Add, this layer does not clamp to capacity.
func (e Engine) applyMultiplyOnEnter(v *Vision, eff MultiplyOnEnterEffect) {
	matching := len(v.Bubbles)
	if eff.Type != nil && !eff.Type.Random {
		matching = v.CountByType(eff.Type.Type)
	}
	bonus := int(math.Floor(float64(matching) * eff.multiplier()))
	if bonus <= 0 {
		return
	}
	bubbleType := eff.Type.resolve()
	newID := e.ids()
	for i := 0; i < bonus; i++ {
		v.Bubbles = append(v.Bubbles, Bubble{ID: newID(), Type: bubbleType, Quality: QualityRainbow})
	}
}

func (e Engine) applyChanceUpgradeOnEnter(v *Vision, eff ChanceUpgradeOnEnterEffect, stochastic bool) {
	p := eff.chance()
	rng := e.rand()
	if stochastic {
		if !hit(p, rng) {
			return
		}
		for i := range v.Bubbles {
			if targetsBubble(eff.Type, v.Bubbles[i]) {
				v.Bubbles[i].Quality = clampQuality(v.Bubbles[i].Quality + 1)
			}
		}
		return
	}
	for i := range v.Bubbles {
		if targetsBubble(eff.Type, v.Bubbles[i]) && hit(p, rng) {
			v.Bubbles[i].Quality = clampQuality(v.Bubbles[i].Quality + 1)
		}
	}
}

func targetsBubble(rule *TypeRule, b Bubble) bool {
	if rule == nil || rule.Random {
		return true
	}
	return b.Type == rule.Type
}
