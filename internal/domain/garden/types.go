package garden

import (
	"fmt"
	"time"
)

// Quality is the ordered grade of a bubble, lowest to highest.
type Quality int

const (
	QualityWhite Quality = iota
	QualityGreen
	QualityBlue
	QualityPurple
	QualityGold
	QualityRainbow
)

const QualityCount = 6

var qualityNames = [QualityCount]string{"white", "green", "blue", "purple", "gold", "rainbow"}

func (q Quality) String() string {
	if q < 0 || int(q) >= QualityCount {
		return "unknown"
	}
	return qualityNames[q]
}

func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quality) UnmarshalText(b []byte) error {
	parsed, err := ParseQuality(string(b))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

func ParseQuality(s string) (Quality, error) {
	for i, name := range qualityNames {
		if name == s {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("unknown quality %q", s)
}

// BubbleType is one of the seven closed bubble categories.
type BubbleType string

const (
	TypeBeast   BubbleType = "beast"
	TypeFlora   BubbleType = "flora"
	TypeSpirit  BubbleType = "spirit"
	TypeMachine BubbleType = "machine"
	TypeDream   BubbleType = "dream"
	TypeStar    BubbleType = "star"
	TypeAbyss   BubbleType = "abyss"
)

// AllBubbleTypes is the closed set, in display order.
var AllBubbleTypes = []BubbleType{TypeBeast, TypeFlora, TypeSpirit, TypeMachine, TypeDream, TypeStar, TypeAbyss}

func IsBubbleType(t BubbleType) bool {
	for _, known := range AllBubbleTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Bubble is one token in the player's collection. Locked is carried for the
// UI collaborator (pin/drag handling); no simulation rule consumes it.
type Bubble struct {
	ID      string     `json:"id"`
	Type    BubbleType `json:"type"`
	Quality Quality    `json:"quality"`
	Locked  bool       `json:"locked,omitempty"`
}

// Lotus is one catalog entry: a modifier the player may pick.
type Lotus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Risk        string `json:"risk,omitempty"`
	Fundamental bool   `json:"fundamental,omitempty"`
	Effect      Effect `json:"-"`
}

// Vision is the player's collection: an ordered bubble sequence, a capacity,
// and at most one attached fundamental lotus.
type Vision struct {
	PlayerID    string    `json:"player_id"`
	Bubbles     []Bubble  `json:"bubbles"`
	Capacity    int       `json:"capacity"`
	Fundamental *Lotus    `json:"fundamental,omitempty"`
	Version     int64     `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewVision(playerID string) Vision {
	return Vision{PlayerID: playerID, Bubbles: []Bubble{}, Capacity: DefaultCapacity}
}

// Clone returns a structurally independent copy; the engine never lets a
// simulated state alias its input's bubbles.
func (v Vision) Clone() Vision {
	out := v
	out.Bubbles = make([]Bubble, len(v.Bubbles))
	copy(out.Bubbles, v.Bubbles)
	if v.Fundamental != nil {
		f := *v.Fundamental
		out.Fundamental = &f
	}
	return out
}

// CountByType returns how many bubbles carry the given type.
func (v Vision) CountByType(t BubbleType) int {
	n := 0
	for _, b := range v.Bubbles {
		if b.Type == t {
			n++
		}
	}
	return n
}

// HighestQuality returns the best grade present, QualityWhite when empty.
func (v Vision) HighestQuality() Quality {
	best := QualityWhite
	for _, b := range v.Bubbles {
		if b.Quality > best {
			best = b.Quality
		}
	}
	return best
}

// WithFundamental attaches a fundamental lotus under the first-wins rule.
// A second attachment attempt is rejected, never silently overwritten.
func (v Vision) WithFundamental(l Lotus) (Vision, error) {
	if v.Fundamental != nil {
		return v, ErrFundamentalAlreadySet
	}
	out := v.Clone()
	attached := l
	out.Fundamental = &attached
	return out, nil
}

// Recommendation is one ranked advice entry returned to the caller.
type Recommendation struct {
	Lotus          Lotus   `json:"lotus"`
	Score          float64 `json:"score"`
	FutureValue    float64 `json:"future_value,omitempty"`
	LookaheadScore float64 `json:"lookahead_score,omitempty"`
	Result         Vision  `json:"result"`
}

// DomainEvent records one committed transition for replay/explainability.
type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}
