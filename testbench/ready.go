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

package testbench

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/axisim/random"
)

// ReadyFunc decides the value of a Ready or Valid signal for the current
// cycle. It must be called exactly once per cycle.
type ReadyFunc func() bool

// Always is ready on every cycle.
func Always() ReadyFunc {
	return func() bool {
		return true
	}
}

// Random is not ready with probability p on each cycle.
func Random(rnd *random.Random, p float64) ReadyFunc {
	return func() bool {
		return rnd.Float64() >= p
	}
}

// EveryOther is ready on alternate cycles, starting with the first cycle.
func EveryOther() ReadyFunc {
	var odd bool
	return func() bool {
		odd = !odd
		return odd
	}
}

// Pause is ready for a single cycle and then not ready for between zero and
// max cycles, chosen at random.
func Pause(rnd *random.Random, max int) ReadyFunc {
	var pause int
	return func() bool {
		if pause > 0 {
			pause--
			return false
		}
		pause = rnd.NoRewind(max + 1)
		return true
	}
}

// Backpressure names a ReadyFunc for the purposes of configuration.
type Backpressure int

// List of valid Backpressure values.
const (
	NoBackpressure Backpressure = iota
	RandomBackpressure
	EveryOtherBackpressure
	PauseBackpressure
)

// MaxPause is the longest pause used by PauseBackpressure.
const MaxPause = 3

func (bp Backpressure) String() string {
	switch bp {
	case NoBackpressure:
		return "none"
	case RandomBackpressure:
		return "random"
	case EveryOtherBackpressure:
		return "everyother"
	case PauseBackpressure:
		return "pause"
	}
	return "unknown"
}

// Backpressures returns the names of all Backpressure values.
func Backpressures() []string {
	return []string{"none", "random", "everyother", "pause"}
}

// BackpressureFromString returns the Backpressure with the matching name.
func BackpressureFromString(s string) (Backpressure, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "none", "":
		return NoBackpressure, nil
	case "random":
		return RandomBackpressure, nil
	case "everyother":
		return EveryOtherBackpressure, nil
	case "pause":
		return PauseBackpressure, nil
	}
	return NoBackpressure, fmt.Errorf("unknown backpressure: %s", s)
}

// NewReady returns the ReadyFunc for the Backpressure. The probability is
// only used by RandomBackpressure.
func NewReady(bp Backpressure, rnd *random.Random, p float64) ReadyFunc {
	switch bp {
	case RandomBackpressure:
		return Random(rnd, p)
	case EveryOtherBackpressure:
		return EveryOther()
	case PauseBackpressure:
		return Pause(rnd, MaxPause)
	}
	return Always()
}
