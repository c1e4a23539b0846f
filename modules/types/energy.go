package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/protocatalog/internal/value"
)

// TicksPerSecond converts power to energy per tick.
const TicksPerSecond = 60

var siPrefixes = map[byte]float64{
	'k': 1e3, 'K': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
	'P': 1e15,
	'E': 1e18,
	'Z': 1e21,
	'Y': 1e24,
}

// Energy is an amount of energy in joules. Power strings ending in W are
// converted to joules per tick.
type Energy float64

// ParseEnergy reads strings such as "150kW", "2.5MJ" or "10J".
func ParseEnergy(s string) (Energy, error) {
	invalid := fmt.Errorf("invalid energy %q: expected a number, an optional SI prefix and J or W", s)

	var perTick bool
	switch {
	case strings.HasSuffix(s, "J"):
	case strings.HasSuffix(s, "W"):
		perTick = true
	default:
		return 0, invalid
	}
	num := s[:len(s)-1]
	if num == "" {
		return 0, invalid
	}

	multiplier := 1.0
	if m, ok := siPrefixes[num[len(num)-1]]; ok {
		multiplier = m
		num = num[:len(num)-1]
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, invalid
	}
	if perTick {
		n /= TicksPerSecond
	}
	return Energy(n * multiplier), nil
}

func (e *Energy) DecodeValue(v value.Value) error {
	s, ok := v.AsString()
	if !ok {
		return value.Mismatch("energy string", v)
	}
	parsed, err := ParseEnergy(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Watts returns the power of an energy-per-tick amount.
func (e Energy) Watts() float64 {
	return float64(e) * TicksPerSecond
}

func (e Energy) String() string {
	return strconv.FormatFloat(float64(e), 'g', -1, 64) + "J"
}
