// This file is part of axisim.
//
// axisim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// axisim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with axisim.  If not, see <https://www.gnu.org/licenses/>.

package pattern

import (
	"fmt"
	"strings"
)

// Kind selects the function used to produce pixel values.
type Kind int

// List of valid Kind values. The order matches the value of the select input
// of the test pattern generator.
const (
	Solid Kind = iota
	ColorBars
	Gradient
	Counter
	Random
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Solid:
		return "solid"
	case ColorBars:
		return "colorbars"
	case Gradient:
		return "gradient"
	case Counter:
		return "counter"
	case Random:
		return "random"
	}
	return fmt.Sprintf("unknown (%d)", int(k))
}

// KindFromSelect converts the value of a 3-bit select input to a Kind. Values
// with no pattern assigned to them select the solid pattern.
func KindFromSelect(sel uint8) Kind {
	k := Kind(sel & 0x07)
	if k >= numKinds {
		return Solid
	}
	return k
}

// Select returns the value of the select input for the Kind.
func (k Kind) Select() uint8 {
	return uint8(k)
}

// KindFromString returns the Kind with the matching name. Matching is case
// insensitive and the hyphenated form "color-bars" is also accepted.
func KindFromString(s string) (Kind, error) {
	s = strings.ToLower(strings.ReplaceAll(s, "-", ""))
	for k := Solid; k < numKinds; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return Solid, fmt.Errorf("unknown pattern: %s", s)
}

// Kinds returns the names of all patterns. Useful for help messages.
func Kinds() []string {
	n := make([]string, 0, numKinds)
	for k := Solid; k < numKinds; k++ {
		n = append(n, k.String())
	}
	return n
}
