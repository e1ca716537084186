package garden

// Engine runs simulation, scoring, and ranking. The zero value is usable;
// both dependencies default to process-wide sources.
type Engine struct {
	NewID IDSource
	RNG   RandomSource
}

var processIDs = NewSequentialIDs("bubble")

func (e Engine) ids() IDSource {
	if e.NewID != nil {
		return e.NewID
	}
	return processIDs
}

func (e Engine) rand() RandomSource {
	if e.RNG != nil {
		return e.RNG
	}
	return DefaultSource()
}

// Simulate applies one effect to a vision and returns the resulting vision.
// The input is never mutated. Fundamental-only and irregular effects move no
// bubbles here; attaching a fundamental is the committing caller's job via
// WithFundamental.
func (e Engine) Simulate(v Vision, eff Effect) Vision {
	out := v.Clone()
	switch eff := eff.(type) {
	case AddEffect:
		e.applyAdd(&out, eff)
	case RemoveEffect:
		applyRemove(&out, eff)
	case UpgradeEffect:
		applyUpgrade(&out, eff)
	case ReplicateEffect:
		e.applyReplicate(&out, eff)
	case ChangeTypeEffect:
		applyChangeType(&out, eff)
	case MultiplyOnEnterEffect, ChanceUpgradeOnEnterEffect, ReactiveEffect, ComplexEffect:
		// enter-phase and irregular effects are inert at pick time
	}
	return out
}

func (e Engine) applyAdd(v *Vision, eff AddEffect) {
	room := v.Capacity - len(v.Bubbles)
	if room <= 0 {
		return
	}
	count := eff.Count.Resolve()
	if count > room {
		count = room
	}
	if count <= 0 {
		return
	}
	grade := resolveGrade(*v, eff.Grade)
	bubbleType := eff.Type.resolve()
	newID := e.ids()
	for i := 0; i < count; i++ {
		v.Bubbles = append(v.Bubbles, Bubble{ID: newID(), Type: bubbleType, Quality: grade})
	}
}

// resolveGrade maps an add-grade rule onto a concrete grade. Floor rules
// ("at least blue/purple") assign the floor itself; there is no draw above.
func resolveGrade(v Vision, rule *GradeRule) Quality {
	if rule == nil {
		return QualityWhite
	}
	switch rule.Kind {
	case GradeHighestOwned:
		return v.HighestQuality()
	case GradeExact, GradeFloor:
		return clampQuality(rule.Grade)
	default:
		return QualityWhite
	}
}

// applyRemove drops bubbles from the front of the sequence. Positional, not
// value-based, even where catalog text says "lowest quality".
func applyRemove(v *Vision, eff RemoveEffect) {
	count := eff.Count
	if count > len(v.Bubbles) {
		count = len(v.Bubbles)
	}
	if count <= 0 {
		return
	}
	v.Bubbles = v.Bubbles[count:]
}

func applyUpgrade(v *Vision, eff UpgradeEffect) {
	if eff.Tiers <= 0 {
		return
	}
	count := eff.Count
	if eff.All || count > len(v.Bubbles) {
		count = len(v.Bubbles)
	}
	for i := 0; i < count; i++ {
		v.Bubbles[i].Quality = clampQuality(v.Bubbles[i].Quality + Quality(eff.Tiers))
	}
}

func (e Engine) applyReplicate(v *Vision, eff ReplicateEffect) {
	room := v.Capacity - len(v.Bubbles)
	if room <= 0 {
		return
	}
	count := eff.Count
	if count > room {
		count = room
	}
	newID := e.ids()
	copied := 0
	for _, b := range v.Bubbles {
		if copied >= count {
			break
		}
		if eff.Type != nil && !eff.Type.Random && b.Type != eff.Type.Type {
			continue
		}
		v.Bubbles = append(v.Bubbles, Bubble{ID: newID(), Type: b.Type, Quality: b.Quality})
		copied++
	}
}

func applyChangeType(v *Vision, eff ChangeTypeEffect) {
	if !IsBubbleType(eff.To) {
		return
	}
	count := eff.Count
	if count > len(v.Bubbles) {
		count = len(v.Bubbles)
	}
	for i := 0; i < count; i++ {
		v.Bubbles[i].Type = eff.To
		if eff.UpgradeAfter {
			v.Bubbles[i].Quality = clampQuality(v.Bubbles[i].Quality + 1)
		}
	}
}

func clampQuality(q Quality) Quality {
	if q < QualityWhite {
		return QualityWhite
	}
	if q > QualityRainbow {
		return QualityRainbow
	}
	return q
}
