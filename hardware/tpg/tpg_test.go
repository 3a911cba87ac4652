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

package tpg_test

import (
	"testing"

	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/hardware/tpg"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/random"
	"github.com/jetsetilly/axisim/test"
)

type bench struct {
	g   *tpg.TPG
	chk *axis.Checker
}

func newBench(t *testing.T, width, height, dataWidth int) *bench {
	t.Helper()
	spec, err := specification.NewSpec(width, height, dataWidth)
	test.DemandSuccess(t, err)
	gen, err := pattern.NewGenerator(spec, pattern.WithRandom(random.NewRandom(1)))
	test.DemandSuccess(t, err)
	g, err := tpg.NewTPG(gen, logger.Deny)
	test.DemandSuccess(t, err)
	return &bench{
		g:   g,
		chk: axis.NewFramingChecker("tpg", g.Output(), spec),
	}
}

func (b *bench) reset() {
	b.g.SetReset(false)
	for range 3 {
		b.g.Drive()
		b.g.Tick()
	}
	b.g.SetReset(true)
	b.chk.Reset()
}

// run the TPG for the number of cycles. the ready function decides the value
// of the ready signal for each cycle. returns the accepted transactions
func (b *bench) run(t *testing.T, cycles int, ready func(cycle int) bool) []axis.Transaction {
	t.Helper()

	var accepted []axis.Transaction

	for c := range cycles {
		b.g.Drive()
		b.g.Output().Ready = ready(c)
		if err := b.chk.Check(); err != nil {
			t.Fatalf("cycle %d: %v", c, err)
		}
		if b.g.Output().Accepted() {
			accepted = append(accepted, b.g.Output().Transaction)
		}
		b.g.Tick()
	}

	return accepted
}

func always(_ int) bool { return true }

func TestFrameStructure(t *testing.T) {
	b := newBench(t, 8, 4, 24)
	g := b.g
	b.reset()
	g.SetSelect(pattern.Counter.Select())
	g.SetEnable(true)

	// two frames plus the one cycle of latency between enable and the first
	// valid transaction
	tr := b.run(t, 2*32+1, always)
	test.DemandEquality(t, len(tr), 64)

	users := 0
	lasts := 0
	for i, x := range tr {
		col := i % 8
		test.ExpectEquality(t, x.Data, axis.Pixel(i%32), "pixel", i)
		test.ExpectEquality(t, x.Last, col == 7, "pixel", i)
		test.ExpectEquality(t, x.User, i%32 == 0, "pixel", i)
		if x.User {
			users++
		}
		if x.Last {
			lasts++
		}
	}
	test.ExpectEquality(t, users, 2)
	test.ExpectEquality(t, lasts, 8)
	test.ExpectEquality(t, g.Frames(), 3)
}

func TestBackpressure(t *testing.T) {
	for _, sel := range []pattern.Kind{pattern.Counter, pattern.ColorBars, pattern.Random, pattern.Gradient} {
		b := newBench(t, 16, 8, 24)
		b.reset()
		b.g.SetSelect(sel.Select())
		b.g.SetEnable(true)
		unthrottled := b.run(t, 3*128+1, always)

		rnd := random.NewRandom(5)
		b = newBench(t, 16, 8, 24)
		b.reset()
		b.g.SetSelect(sel.Select())
		b.g.SetEnable(true)
		throttled := b.run(t, 3*128*5, func(_ int) bool { return rnd.Float64() > 0.7 })

		test.DemandSuccess(t, len(throttled) >= len(unthrottled), sel)
		for i := range unthrottled {
			if !test.ExpectEquality(t, throttled[i], unthrottled[i], sel, "pixel", i) {
				break
			}
		}
	}
}

func TestDisableWhileStalled(t *testing.T) {
	b := newBench(t, 8, 4, 24)
	g := b.g
	b.reset()
	g.SetSelect(pattern.Counter.Select())
	g.SetEnable(true)

	// load the first transaction but do not accept it
	tr := b.run(t, 4, func(_ int) bool { return false })
	test.ExpectEquality(t, len(tr), 0)

	// disable. the offered transaction remains on the channel
	g.SetEnable(false)
	g.Drive()
	test.ExpectSuccess(t, g.Output().Valid)
	test.ExpectSuccess(t, g.Output().User)
	g.Output().Ready = false
	g.Tick()

	// accept it
	g.Drive()
	test.ExpectSuccess(t, g.Output().Valid)
	test.ExpectEquality(t, g.Output().Data, axis.Pixel(0))
	g.Output().Ready = true
	g.Tick()

	// nothing is offered after that
	for range 10 {
		g.Drive()
		test.ExpectFailure(t, g.Output().Valid)
		g.Tick()
	}

	// enabling again continues from where the TPG left off
	g.SetEnable(true)
	g.Drive()
	g.Tick()
	g.Drive()
	test.ExpectSuccess(t, g.Output().Valid)
	test.ExpectEquality(t, g.Output().Data, axis.Pixel(1))
}

func TestResetMidTransaction(t *testing.T) {
	b := newBench(t, 8, 4, 24)
	g := b.g
	b.reset()
	g.SetSelect(pattern.Counter.Select())
	g.SetEnable(true)

	b.run(t, 10, func(c int) bool { return c < 6 })
	g.Drive()
	test.ExpectSuccess(t, g.Output().Stalled())

	g.SetReset(false)
	g.Tick()
	g.Drive()
	test.ExpectFailure(t, g.Output().Valid)
	test.ExpectEquality(t, g.Output().Transaction, axis.Transaction{})
	test.ExpectEquality(t, g.Cursor().Row, 0)
	test.ExpectEquality(t, g.Cursor().Col, 0)

	// start of frame after reset
	g.SetReset(true)
	b.chk.Reset()
	tr := b.run(t, 2, always)
	test.DemandEquality(t, len(tr), 1)
	test.ExpectSuccess(t, tr[0].User)
	test.ExpectEquality(t, tr[0].Data, axis.Pixel(0))
}

func TestPatternLatchedPerFrame(t *testing.T) {
	b := newBench(t, 8, 4, 24)
	g := b.g
	b.reset()
	g.SetSelect(pattern.Counter.Select())
	g.SetEnable(true)

	tr := b.run(t, 11, always)
	test.ExpectEquality(t, g.Pattern(), pattern.Counter)

	// changing the select mid-frame has no effect until the next frame
	g.SetSelect(pattern.Solid.Select())
	tr = append(tr, b.run(t, 30, always)...)
	test.DemandEquality(t, len(tr), 40)

	for i := 0; i < 32; i++ {
		test.ExpectEquality(t, tr[i].Data, axis.Pixel(i), "pixel", i)
	}
	for i := 32; i < 40; i++ {
		test.ExpectEquality(t, tr[i].Data, axis.Pixel(0xffffff), "pixel", i)
	}
	test.ExpectEquality(t, g.Pattern(), pattern.Solid)
}
