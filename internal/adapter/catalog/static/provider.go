package static

import (
	"context"
	"fmt"
	"os"
	"sync"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"

	"gopkg.in/yaml.v3"
)

// Provider loads the lotus catalog from a YAML file once and serves it from
// an in-memory cache. The file is produced offline by the catalog tooling;
// this adapter only normalizes it into the engine's effect types.
type Provider struct {
	Path string

	mu   sync.RWMutex
	all  []garden.Lotus
	byID map[string]garden.Lotus
}

type rawCatalog struct {
	Lotuses []rawLotus `yaml:"lotuses"`
}

type rawLotus struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Risk        string    `yaml:"risk,omitempty"`
	Fundamental bool      `yaml:"fundamental,omitempty"`
	Effect      rawEffect `yaml:"effect"`
}

type rawEffect struct {
	Type string `yaml:"type"`

	Count    int `yaml:"count,omitempty"`
	CountMin int `yaml:"count_min,omitempty"`
	CountMax int `yaml:"count_max,omitempty"`

	Grade     string `yaml:"grade,omitempty"`
	GradeRule string `yaml:"grade_rule,omitempty"` // "", highest_owned, at_least

	BubbleType string `yaml:"bubble_type,omitempty"` // category name or "random"
	To         string `yaml:"to,omitempty"`

	Tiers        int  `yaml:"tiers,omitempty"`
	All          bool `yaml:"all,omitempty"`
	UpgradeAfter bool `yaml:"upgrade_after,omitempty"`

	Multiplier float64 `yaml:"multiplier,omitempty"`
	Chance     float64 `yaml:"chance,omitempty"`
	Trigger    string  `yaml:"trigger,omitempty"`
	Text       string  `yaml:"text,omitempty"`
}

func (p *Provider) All(_ context.Context) ([]garden.Lotus, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]garden.Lotus, len(p.all))
	copy(out, p.all)
	return out, nil
}

func (p *Provider) ByID(_ context.Context, id string) (garden.Lotus, error) {
	if err := p.ensureLoaded(); err != nil {
		return garden.Lotus{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	l, ok := p.byID[id]
	if !ok {
		return garden.Lotus{}, ports.ErrNotFound
	}
	return l, nil
}

func (p *Provider) ensureLoaded() error {
	p.mu.RLock()
	loaded := p.byID != nil
	p.mu.RUnlock()
	if loaded {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.byID != nil {
		return nil
	}

	b, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	var raw rawCatalog
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	all := make([]garden.Lotus, 0, len(raw.Lotuses))
	byID := make(map[string]garden.Lotus, len(raw.Lotuses))
	for i, rl := range raw.Lotuses {
		if rl.ID == "" {
			return fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := byID[rl.ID]; dup {
			return fmt.Errorf("catalog entry %q duplicated", rl.ID)
		}
		l := garden.Lotus{
			ID:          rl.ID,
			Name:        rl.Name,
			Description: rl.Description,
			Risk:        rl.Risk,
			Fundamental: rl.Fundamental,
			Effect:      normalizeEffect(rl.Effect),
		}
		all = append(all, l)
		byID[rl.ID] = l
	}
	p.all = all
	p.byID = byID
	return nil
}

// normalizeEffect maps a raw tagged entry onto the engine's closed effect
// set. Unknown tags degrade to Complex rather than failing the load.
func normalizeEffect(raw rawEffect) garden.Effect {
	switch raw.Type {
	case "add":
		return garden.AddEffect{
			Count: countOf(raw),
			Grade: gradeRuleOf(raw),
			Type:  typeRuleOf(raw.BubbleType),
		}
	case "remove":
		return garden.RemoveEffect{Count: raw.Count}
	case "upgrade":
		return garden.UpgradeEffect{Count: raw.Count, Tiers: raw.Tiers, All: raw.All}
	case "replicate":
		return garden.ReplicateEffect{Count: raw.Count, Type: typeRuleOf(raw.BubbleType)}
	case "change_type":
		return garden.ChangeTypeEffect{
			Count:        raw.Count,
			To:           garden.BubbleType(raw.To),
			UpgradeAfter: raw.UpgradeAfter,
		}
	case "multiply_on_enter":
		return garden.MultiplyOnEnterEffect{
			Type:       typeRuleOf(raw.BubbleType),
			Multiplier: raw.Multiplier,
		}
	case "chance_upgrade_on_enter":
		return garden.ChanceUpgradeOnEnterEffect{
			Chance: raw.Chance,
			Type:   typeRuleOf(raw.BubbleType),
		}
	case "reactive":
		return garden.ReactiveEffect{Trigger: garden.ReactiveTrigger(raw.Trigger)}
	case "complex":
		return garden.ComplexEffect{Text: raw.Text}
	default:
		return garden.ComplexEffect{Text: raw.Text}
	}
}

func countOf(raw rawEffect) garden.CountRange {
	if raw.CountMin != 0 || raw.CountMax != 0 {
		return garden.CountRange{Min: raw.CountMin, Max: raw.CountMax}
	}
	return garden.FixedCount(raw.Count)
}

func gradeRuleOf(raw rawEffect) *garden.GradeRule {
	if raw.GradeRule == "highest_owned" {
		return &garden.GradeRule{Kind: garden.GradeHighestOwned}
	}
	if raw.Grade == "" {
		return nil
	}
	grade, err := garden.ParseQuality(raw.Grade)
	if err != nil {
		return nil
	}
	kind := garden.GradeExact
	if raw.GradeRule == "at_least" {
		kind = garden.GradeFloor
	}
	return &garden.GradeRule{Kind: kind, Grade: grade}
}

func typeRuleOf(s string) *garden.TypeRule {
	switch {
	case s == "":
		return nil
	case s == "random":
		return &garden.TypeRule{Random: true}
	default:
		return &garden.TypeRule{Type: garden.BubbleType(s)}
	}
}
