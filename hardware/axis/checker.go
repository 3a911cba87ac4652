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

package axis

import (
	"fmt"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/specification"
)

// Sentinal error patterns for protocol violations. Both are fatal.
const (
	StabilityViolation = "axis: %s: stalled transaction changed (%s)"
	FramingViolation   = "axis: %s: framing error at %s (%s)"
)

// Checker is a conformance monitor for a single channel. The Check() function
// should be called once per cycle after all signals on the channel have been
// driven and before the clock edge.
type Checker struct {
	name string
	ch   *Channel

	// the stream format. framing checks are made only if framing is true
	spec    specification.Spec
	framing bool

	// the state of the channel on the previous cycle
	prev    Channel
	hasPrev bool

	// position of the next accepted transaction
	pos coords.Coords

	// framing is not checked until the next User marker
	restart bool

	// number of cycles checked and number of transactions accepted
	cycles   int
	accepted int
}

// NewChecker is the preferred method of initialisation for the Checker type.
// The name is used in error messages. Framing checks are not performed.
func NewChecker(name string, ch *Channel) *Checker {
	return &Checker{
		name: name,
		ch:   ch,
	}
}

// NewFramingChecker creates a Checker that also checks that the User and Last
// markers are consistent with the frame format.
func NewFramingChecker(name string, ch *Channel, spec specification.Spec) *Checker {
	chk := NewChecker(name, ch)
	chk.spec = spec
	chk.framing = true
	return chk
}

// Reset forgets the history of the channel. Should be called whenever the
// producer and consumer are reset.
func (chk *Checker) Reset() {
	chk.hasPrev = false
	chk.restart = false
	chk.pos.Reset()
}

// Restart allows the current frame to end early. Transactions accepted before
// the next User marker are not checked for framing. Stability checks are not
// affected.
func (chk *Checker) Restart() {
	chk.restart = true
}

// Position returns the raster position of the next transaction to be accepted.
// Only meaningful for checkers created with NewFramingChecker().
func (chk *Checker) Position() coords.Coords {
	return chk.pos
}

// Accepted returns the number of transactions accepted since the checker was
// created.
func (chk *Checker) Accepted() int {
	return chk.accepted
}

// Check the current state of the channel against the previous state.
func (chk *Checker) Check() error {
	chk.cycles++

	if chk.hasPrev && chk.prev.Stalled() {
		if !chk.ch.Valid {
			return curated.Errorf(StabilityViolation, chk.name, fmt.Sprintf("valid dropped on cycle %d", chk.cycles))
		}
		if chk.ch.Transaction != chk.prev.Transaction {
			return curated.Errorf(StabilityViolation, chk.name, fmt.Sprintf("%s became %s on cycle %d",
				chk.prev.Transaction, chk.ch.Transaction, chk.cycles))
		}
	}

	chk.prev = *chk.ch
	chk.hasPrev = true

	if !chk.ch.Accepted() {
		return nil
	}
	chk.accepted++

	if !chk.framing {
		return nil
	}

	if chk.restart {
		if !chk.ch.User {
			return nil
		}
		chk.restart = false
		chk.pos.Reset()
	}

	defer chk.pos.Advance(chk.spec.Width, chk.spec.Height)

	if chk.ch.User != chk.pos.StartOfFrame() {
		if chk.ch.User {
			return curated.Errorf(FramingViolation, chk.name, chk.pos, "unexpected user marker")
		}
		return curated.Errorf(FramingViolation, chk.name, chk.pos, "missing user marker")
	}

	if chk.ch.Last != chk.pos.EndOfRow(chk.spec.Width) {
		if chk.ch.Last {
			return curated.Errorf(FramingViolation, chk.name, chk.pos, "unexpected last marker")
		}
		return curated.Errorf(FramingViolation, chk.name, chk.pos, "missing last marker")
	}

	return nil
}
