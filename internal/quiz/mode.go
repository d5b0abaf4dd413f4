package quiz

import (
	"fmt"
	"strings"
)

// Mode decides which face of a card is shown first.
type Mode int

const (
	FrontFirst Mode = iota
	BackFirst
	Random
)

func (m Mode) String() string {
	switch m {
	case FrontFirst:
		return "front"
	case BackFirst:
		return "back"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m >= FrontFirst && m <= Random
}

// ParseMode accepts "front", "back" or "random" (case-insensitive), plus the
// long forms "front_first" and "back_first". An empty string means FrontFirst.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "front", "front_first", "front-first":
		return FrontFirst, nil
	case "back", "back_first", "back-first":
		return BackFirst, nil
	case "random":
		return Random, nil
	default:
		return FrontFirst, fmt.Errorf("quiz: unknown mode %q", s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("quiz: invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
