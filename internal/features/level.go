package features

import "strings"

// Level is a coarse categorical reading used by the radio inputs.
type Level string

const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// Levels lists the categorical readings in display order.
func Levels() []Level {
	return []Level{Low, Medium, High}
}

// Value returns the fixed numeric constant for the level. Unknown levels
// report ok=false.
func (l Level) Value() (float64, bool) {
	switch l {
	case Low:
		return 0.3, true
	case Medium:
		return 0.6, true
	case High:
		return 0.9, true
	default:
		return 0, false
	}
}

// ParseLevel matches s case-insensitively against the known levels.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	for _, l := range Levels() {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", invalidInput("unknown level %q (want Low, Medium or High)", s)
}
