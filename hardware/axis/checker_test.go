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

package axis_test

import (
	"testing"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/test"
)

func TestChannel(t *testing.T) {
	var ch axis.Channel
	test.ExpectFailure(t, ch.Accepted())
	test.ExpectFailure(t, ch.Stalled())

	ch.Offer(axis.Transaction{Data: 0x123456, User: true})
	test.ExpectSuccess(t, ch.Stalled())
	ch.Ready = true
	test.ExpectSuccess(t, ch.Accepted())

	ch.Idle()
	test.ExpectFailure(t, ch.Valid)
	test.ExpectEquality(t, ch.Transaction, axis.Transaction{})
}

func TestStability(t *testing.T) {
	var ch axis.Channel
	chk := axis.NewChecker("test", &ch)

	// stalled transaction held for two cycles
	ch.Offer(axis.Transaction{Data: 1})
	test.ExpectSuccess(t, chk.Check())
	test.ExpectSuccess(t, chk.Check())

	// accepted
	ch.Ready = true
	test.ExpectSuccess(t, chk.Check())
	test.ExpectEquality(t, chk.Accepted(), 1)

	// producer may change data after acceptance
	ch.Ready = false
	ch.Offer(axis.Transaction{Data: 2})
	test.ExpectSuccess(t, chk.Check())

	// but not while stalled
	ch.Offer(axis.Transaction{Data: 3})
	err := chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.StabilityViolation))
}

func TestStabilityRetraction(t *testing.T) {
	var ch axis.Channel
	chk := axis.NewChecker("test", &ch)

	ch.Offer(axis.Transaction{Data: 1, Last: true})
	test.ExpectSuccess(t, chk.Check())

	ch.Idle()
	err := chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.StabilityViolation))

	// markers are part of the transaction
	chk.Reset()
	ch.Offer(axis.Transaction{Data: 1, Last: true})
	test.ExpectSuccess(t, chk.Check())
	ch.Offer(axis.Transaction{Data: 1, Last: false})
	err = chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.StabilityViolation))
}

func TestFraming(t *testing.T) {
	spec, err := specification.NewSpec(2, 2, 8)
	test.DemandSuccess(t, err)

	var ch axis.Channel
	chk := axis.NewFramingChecker("test", &ch, spec)
	ch.Ready = true

	frame := []axis.Transaction{
		{Data: 0, User: true},
		{Data: 1, Last: true},
		{Data: 2},
		{Data: 3, Last: true},
	}

	// two good frames
	for range 2 {
		for _, tr := range frame {
			ch.Offer(tr)
			test.ExpectSuccess(t, chk.Check())
		}
	}

	// missing user marker
	chk.Reset()
	ch.Offer(axis.Transaction{Data: 0})
	err = chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.FramingViolation))

	// last marker in the wrong place
	chk.Reset()
	ch.Offer(axis.Transaction{Data: 0, User: true, Last: true})
	err = chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.FramingViolation))

	// user marker in the middle of a frame
	chk.Reset()
	ch.Offer(axis.Transaction{Data: 0, User: true})
	test.ExpectSuccess(t, chk.Check())
	ch.Offer(axis.Transaction{Data: 1, User: true, Last: true})
	err = chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.FramingViolation))
}

func TestFramingRestart(t *testing.T) {
	spec, err := specification.NewSpec(2, 2, 8)
	test.DemandSuccess(t, err)

	var ch axis.Channel
	chk := axis.NewFramingChecker("test", &ch, spec)
	ch.Ready = true

	ch.Offer(axis.Transaction{Data: 0, User: true})
	test.ExpectSuccess(t, chk.Check())

	// the tail of the abandoned frame is not checked
	chk.Restart()
	ch.Offer(axis.Transaction{Data: 1})
	test.ExpectSuccess(t, chk.Check())

	// the next frame starts with the user marker and is checked as usual
	ch.Offer(axis.Transaction{Data: 0, User: true})
	test.ExpectSuccess(t, chk.Check())
	test.ExpectEquality(t, chk.Position().Col, 1)
	ch.Offer(axis.Transaction{Data: 1})
	err = chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.FramingViolation))

	// stability is checked while restarting
	chk.Reset()
	chk.Restart()
	ch.Ready = false
	ch.Offer(axis.Transaction{Data: 4})
	test.ExpectSuccess(t, chk.Check())
	ch.Offer(axis.Transaction{Data: 5})
	err = chk.Check()
	test.ExpectSuccess(t, curated.Is(err, axis.StabilityViolation))
}
