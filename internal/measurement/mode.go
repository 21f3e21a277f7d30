package measurement

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gomeasure/pkg/analysis"
)

// Mode selects which measurement tool is active
type Mode int

const (
	ModeLength Mode = iota
	ModeAngle
	ModeArea
)

// Modes lists every mode in toolbar order
var Modes = []Mode{ModeLength, ModeAngle, ModeArea}

// Unbounded marks a mode whose point buffer has no capacity limit
const Unbounded = -1

func (m Mode) String() string {
	switch m {
	case ModeLength:
		return "length"
	case ModeAngle:
		return "angle"
	case ModeArea:
		return "area"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Title is the label shown on toolbar buttons
func (m Mode) Title() string {
	switch m {
	case ModeAngle:
		return "Angle"
	case ModeArea:
		return "Area"
	default:
		return "Length"
	}
}

// Capacity is the largest number of committed points the mode keeps
func (m Mode) Capacity() int {
	switch m {
	case ModeLength:
		return 2
	case ModeAngle:
		return 3
	default:
		return Unbounded
	}
}

// Quantity maps the mode to the value it measures
func (m Mode) Quantity() analysis.Quantity {
	switch m {
	case ModeAngle:
		return analysis.QuantityAngle
	case ModeArea:
		return analysis.QuantityArea
	default:
		return analysis.QuantityLength
	}
}

// ParseMode accepts mode names case-insensitively, including the aliases
// "point" for length and "face" for area
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "length", "point", "distance":
		return ModeLength, nil
	case "angle":
		return ModeAngle, nil
	case "area", "face":
		return ModeArea, nil
	default:
		return ModeLength, fmt.Errorf("unknown measurement mode %q (want length, angle or area)", s)
	}
}

// Set implements pflag.Value so modes can be used as CLI flags
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *Mode) Type() string {
	return "mode"
}

// Cursor is the pointer shape a host shows while a mode is active
type Cursor int

const (
	CursorCrosshair Cursor = iota
	CursorAlias
	CursorPointer
)

// Cursor returns the pointer shape for the mode
func (m Mode) Cursor() Cursor {
	switch m {
	case ModeAngle:
		return CursorAlias
	case ModeArea:
		return CursorPointer
	default:
		return CursorCrosshair
	}
}
