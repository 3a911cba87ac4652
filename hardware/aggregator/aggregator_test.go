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

package aggregator_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware"
	"github.com/jetsetilly/axisim/hardware/aggregator"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/random"
	"github.com/jetsetilly/axisim/testbench"
	"github.com/jetsetilly/axisim/test"
)

var offsets = [aggregator.NumInputs]axis.Pixel{0, 1000, 2000, 3000}

type config struct {
	width, height int
	offsets       [aggregator.NumInputs]axis.Pixel
	source        [aggregator.NumInputs][]testbench.SourceOption
	options       []aggregator.Option
	ready         testbench.ReadyFunc
}

// newBench creates and resets a bench with counter images on every source
func newBench(t *testing.T, cfg config) *hardware.AggregatorBench {
	t.Helper()

	spec, err := specification.NewSpec(cfg.width, cfg.height, 32)
	test.DemandSuccess(t, err)

	agg, err := aggregator.NewAggregator(spec, logger.Deny, cfg.options...)
	test.DemandSuccess(t, err)

	gen, err := pattern.NewGenerator(agg.SubImage())
	test.DemandSuccess(t, err)

	var sources [aggregator.NumInputs]*testbench.Source
	for i := range sources {
		img := testbench.NewImage(gen, pattern.Counter, cfg.offsets[i])
		sources[i] = testbench.NewSource(fmt.Sprintf("src%d", i), img, cfg.source[i]...)
	}

	b, err := hardware.NewAggregatorBench(agg, sources, cfg.ready, logger.Deny)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.Reset(2))

	return b
}

func TestReset(t *testing.T) {
	var delayed [aggregator.NumInputs][]testbench.SourceOption
	for i := range delayed {
		delayed[i] = []testbench.SourceOption{testbench.WithDelay(10)}
	}
	b := newBench(t, config{width: 8, height: 4, source: delayed})

	for range 10 {
		test.DemandSuccess(t, b.Step())
		for i := range aggregator.NumInputs {
			test.ExpectFailure(t, b.Aggregator.Input(i).Ready, i)
		}
		test.ExpectFailure(t, b.Aggregator.Output().Valid)
		test.ExpectEquality(t, b.Aggregator.State(), aggregator.WaitStartOfFrame)
	}
}

// firstOutput steps the bench until the output is valid and returns the
// number of cycles stepped
func firstOutput(t *testing.T, b *hardware.AggregatorBench) int {
	t.Helper()
	for c := range 100 {
		test.DemandSuccess(t, b.Step())
		if b.Aggregator.Output().Valid {
			return c
		}
	}
	t.Fatalf("no output")
	return 0
}

func TestBarrierSkew(t *testing.T) {
	aligned := newBench(t, config{width: 8, height: 4, offsets: offsets})
	T := firstOutput(t, aligned)

	const k = 5

	var skew [aggregator.NumInputs][]testbench.SourceOption
	skew[3] = []testbench.SourceOption{testbench.WithDelay(k)}
	b := newBench(t, config{width: 8, height: 4, offsets: offsets, source: skew})

	for c := 0; c < T+k; c++ {
		test.DemandSuccess(t, b.Step())
		test.ExpectFailure(t, b.Aggregator.Output().Valid, c)

		// early inputs are held with ready low and nothing is accepted
		for i := range 3 {
			test.ExpectFailure(t, b.Aggregator.Input(i).Ready, c, i)
			test.ExpectEquality(t, b.Inputs[i].Accepted(), 0, c, i)
		}
	}

	test.DemandSuccess(t, b.Step())
	test.ExpectSuccess(t, b.Aggregator.Output().Valid)
	test.ExpectSuccess(t, b.Aggregator.Output().User)
	test.ExpectEquality(t, b.Aggregator.Output().Data, axis.Pixel(0))
	test.ExpectEquality(t, b.Aggregator.State(), aggregator.Streaming)

	// the skewed run produces the same frame
	test.DemandSuccess(t, hardware.RunForFrameCount(b, 1, nil))
	f, ok := b.Capture.Last()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, b.Verify(f))
}

func TestStalled(t *testing.T) {
	var skew [aggregator.NumInputs][]testbench.SourceOption
	skew[1] = []testbench.SourceOption{testbench.WithDelay(20)}
	b := newBench(t, config{width: 8, height: 4, source: skew})

	test.DemandSuccess(t, hardware.RunForCycles(b, 10))
	test.ExpectEquality(t, b.Aggregator.State(), aggregator.WaitStartOfFrame)
	test.ExpectInequality(t, b.Aggregator.Stalled(), 0)

	sof := b.Aggregator.StartOfFrame()
	test.ExpectSuccess(t, sof[0])
	test.ExpectFailure(t, sof[1])
	test.ExpectSuccess(t, sof[2])
	test.ExpectSuccess(t, sof[3])

	test.DemandSuccess(t, hardware.RunForCycles(b, 20))
	test.ExpectEquality(t, b.Aggregator.Stalled(), 0)
	test.ExpectEquality(t, b.Aggregator.State(), aggregator.Streaming)
}

func TestComposite(t *testing.T) {
	b := newBench(t, config{width: 8, height: 4, offsets: offsets})

	test.DemandSuccess(t, hardware.RunForFrameCount(b, 2, nil))
	test.ExpectEquality(t, b.Aggregator.Frames(), 2)
	test.ExpectEquality(t, b.Aggregator.Mismatches(), 0)

	f, ok := b.Capture.Last()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, b.Verify(f))

	// output row 0 is row 0 of input 0 followed by row 0 of input 1
	test.ExpectEquality(t, f.At(0, 0), axis.Pixel(0))
	test.ExpectEquality(t, f.At(0, 3), axis.Pixel(3))
	test.ExpectEquality(t, f.At(0, 4), axis.Pixel(1000))
	test.ExpectEquality(t, f.At(1, 4), axis.Pixel(1004))
	test.ExpectEquality(t, f.At(2, 0), axis.Pixel(2000))
	test.ExpectEquality(t, f.At(3, 7), axis.Pixel(3007))
}

func TestColumnMajor(t *testing.T) {
	b := newBench(t, config{
		width:   8,
		height:  4,
		offsets: offsets,
		options: []aggregator.Option{aggregator.WithTiling(aggregator.ColumnMajor)},
	})

	test.DemandSuccess(t, hardware.RunForFrameCount(b, 1, nil))
	f, ok := b.Capture.Last()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, b.Verify(f))

	test.ExpectEquality(t, f.At(0, 4), axis.Pixel(2000))
	test.ExpectEquality(t, f.At(2, 0), axis.Pixel(1000))
}

func TestTiling(t *testing.T) {
	for _, tl := range []aggregator.Tiling{aggregator.RowMajor, aggregator.ColumnMajor} {
		for i := range aggregator.NumInputs {
			qx, qy := tl.Quadrant(i)
			test.ExpectEquality(t, tl.Input(qx, qy), i, tl)
		}
	}

	tl, err := aggregator.TilingFromString("column-major")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, tl, aggregator.ColumnMajor)

	_, err = aggregator.TilingFromString("diagonal")
	test.ExpectFailure(t, err)
}

func TestFullSize(t *testing.T) {
	b := newBench(t, config{width: 640, height: 480})

	out := b.Aggregator.Output()
	var accepted int
	for b.Frames() < 1 {
		test.DemandSuccess(t, b.Step())
		if out.Accepted() {
			col := accepted % 640
			if out.Last != (col == 639) {
				t.Fatalf("last marker at column %d", col)
			}
			if out.User != (accepted == 0) {
				t.Fatalf("user marker on transaction %d", accepted)
			}
			accepted++
		}
	}
	test.ExpectEquality(t, accepted, 640*480)

	f, ok := b.Capture.Last()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, b.Verify(f))
	test.ExpectEquality(t, f.At(0, 319), axis.Pixel(319))
	test.ExpectEquality(t, f.At(0, 320), axis.Pixel(0))
	test.ExpectEquality(t, f.At(1, 320), axis.Pixel(320))
	test.ExpectEquality(t, f.At(479, 639), axis.Pixel(320*240-1))
}

func TestBackpressure(t *testing.T) {
	plain := newBench(t, config{width: 16, height: 8, offsets: offsets})
	test.DemandSuccess(t, hardware.RunForFrameCount(plain, 3, nil))

	rnd := random.NewRandom(1)
	for _, ready := range []testbench.ReadyFunc{
		testbench.Pause(rnd, testbench.MaxPause),
		testbench.Random(rnd, 0.3),
		testbench.EveryOther(),
	} {
		b := newBench(t, config{width: 16, height: 8, offsets: offsets, ready: ready})
		test.DemandSuccess(t, hardware.RunForFrameCount(b, 3, nil))
		test.ExpectEquality(t, b.Digest.Hash(), plain.Digest.Hash())
		test.ExpectSuccess(t, b.Cycle() > plain.Cycle())
		test.ExpectEquality(t, b.Aggregator.Mismatches(), 0)
	}
}

func TestConfigMismatch(t *testing.T) {
	spec, err := specification.NewSpec(640, 480, 32)
	test.DemandSuccess(t, err)

	_, err = aggregator.NewAggregator(spec, logger.Deny, aggregator.WithSubImage(320, 240))
	test.ExpectSuccess(t, err)

	_, err = aggregator.NewAggregator(spec, logger.Deny, aggregator.WithSubImage(320, 200))
	test.ExpectSuccess(t, curated.Is(err, aggregator.SubImageMismatch))

	odd, err := specification.NewSpec(641, 480, 32)
	test.DemandSuccess(t, err)
	_, err = aggregator.NewAggregator(odd, logger.Deny)
	test.ExpectSuccess(t, curated.Is(err, aggregator.InvalidSpec))

	// source images must match the sub-image
	agg, err := aggregator.NewAggregator(spec, logger.Deny)
	test.DemandSuccess(t, err)
	wrong, err := specification.NewSpec(320, 200, 32)
	test.DemandSuccess(t, err)
	gen, err := pattern.NewGenerator(wrong)
	test.DemandSuccess(t, err)

	var sources [aggregator.NumInputs]*testbench.Source
	for i := range sources {
		sources[i] = testbench.NewSource("src", testbench.NewImage(gen, pattern.Counter, 0))
	}
	_, err = hardware.NewAggregatorBench(agg, sources, nil, logger.Deny)
	test.ExpectSuccess(t, curated.Is(err, hardware.SourceMismatch))
}

func TestResync(t *testing.T) {
	var midframe [aggregator.NumInputs][]testbench.SourceOption
	midframe[2] = []testbench.SourceOption{testbench.WithStart(1, 0)}

	// without resync the input that starts mid-frame stalls the aggregator
	b := newBench(t, config{width: 8, height: 4, offsets: offsets, source: midframe})
	test.DemandSuccess(t, hardware.RunForCycles(b, 100))
	test.ExpectEquality(t, b.Frames(), 0)
	test.ExpectEquality(t, b.Aggregator.State(), aggregator.WaitStartOfFrame)
	test.ExpectEquality(t, b.Aggregator.Stalled(), 99)
	test.ExpectEquality(t, b.Aggregator.Dropped(2), 0)

	// with resync the rest of the frame is drained
	b = newBench(t, config{
		width:   8,
		height:  4,
		offsets: offsets,
		source:  midframe,
		options: []aggregator.Option{aggregator.WithResync()},
	})
	test.DemandSuccess(t, hardware.RunForFrameCount(b, 1, nil))
	test.ExpectEquality(t, b.Aggregator.Dropped(2), 4)
	test.ExpectEquality(t, b.Aggregator.Dropped(0), 0)

	f, ok := b.Capture.Last()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, b.Verify(f))
}

func TestMarkerMismatch(t *testing.T) {
	spec, err := specification.NewSpec(4, 2, 8)
	test.DemandSuccess(t, err)
	agg, err := aggregator.NewAggregator(spec, logger.Deny)
	test.DemandSuccess(t, err)

	agg.SetReset(false)
	agg.Evaluate()
	agg.Tick()
	agg.SetReset(true)

	agg.Output().Ready = true
	for i := range aggregator.NumInputs {
		agg.Input(i).Offer(axis.Transaction{Data: axis.Pixel(i), User: true})
	}
	agg.Evaluate()
	agg.Tick()
	test.DemandEquality(t, agg.State(), aggregator.Streaming)

	agg.Evaluate()
	test.ExpectSuccess(t, agg.Output().Valid)
	test.ExpectSuccess(t, agg.Output().User)
	test.ExpectSuccess(t, agg.Input(0).Ready)
	test.ExpectFailure(t, agg.Input(1).Ready)
	agg.Tick()
	test.ExpectEquality(t, agg.Mismatches(), 0)

	// the second pixel of input 0 should have the last marker and no user
	// marker. the output markers are taken from the output position
	agg.Input(0).Offer(axis.Transaction{Data: 5, User: true, Last: true})
	agg.Evaluate()
	test.ExpectEquality(t, agg.Output().Data, axis.Pixel(5))
	test.ExpectFailure(t, agg.Output().User)
	test.ExpectFailure(t, agg.Output().Last)
	agg.Tick()
	test.ExpectEquality(t, agg.Mismatches(), 1)

	// statistics are cleared by reset
	agg.SetReset(false)
	agg.Evaluate()
	agg.Tick()
	test.ExpectEquality(t, agg.Mismatches(), 0)
	test.ExpectEquality(t, agg.Frames(), 0)
}

// streaming returns an aggregator that has accepted the first pixel of input 0
func streaming(t *testing.T) *aggregator.Aggregator {
	t.Helper()

	spec, err := specification.NewSpec(4, 2, 8)
	test.DemandSuccess(t, err)
	agg, err := aggregator.NewAggregator(spec, logger.Deny)
	test.DemandSuccess(t, err)

	agg.SetReset(false)
	agg.Evaluate()
	agg.Tick()
	agg.SetReset(true)

	agg.Output().Ready = true
	for i := range aggregator.NumInputs {
		agg.Input(i).Offer(axis.Transaction{Data: axis.Pixel(i), User: true})
	}
	agg.Evaluate()
	agg.Tick()
	test.DemandEquality(t, agg.State(), aggregator.Streaming)

	agg.Evaluate()
	test.DemandSuccess(t, agg.Output().Accepted())
	agg.Tick()

	return agg
}

func TestInputResetDrain(t *testing.T) {
	agg := streaming(t)

	// nothing is offered or accepted once an input is in reset
	agg.SetInputReset(2, false)
	agg.Input(0).Offer(axis.Transaction{Data: 1, Last: true})
	agg.Evaluate()
	test.ExpectFailure(t, agg.Output().Valid)
	for i := range aggregator.NumInputs {
		test.ExpectFailure(t, agg.Input(i).Ready, i)
	}
	agg.Tick()
	test.ExpectEquality(t, agg.State(), aggregator.WaitStartOfFrame)
	test.ExpectEquality(t, agg.Abandoned(), 1)
	test.ExpectEquality(t, agg.Cursor().Col, 0)
	test.ExpectEquality(t, agg.InputCursor(0).Col, 0)

	// input 0 is drained up to its next start of frame even though resync is
	// not enabled. the other inputs are already at the start of a frame
	agg.SetInputReset(2, true)
	agg.Evaluate()
	test.ExpectSuccess(t, agg.Input(0).Ready)
	test.ExpectFailure(t, agg.Input(1).Ready)
	test.ExpectFailure(t, agg.Input(2).Ready)
	agg.Tick()
	test.ExpectEquality(t, agg.Dropped(0), 1)
	test.ExpectEquality(t, agg.State(), aggregator.WaitStartOfFrame)

	agg.Input(0).Offer(axis.Transaction{Data: 0, User: true})
	agg.Evaluate()
	test.ExpectFailure(t, agg.Input(0).Ready)
	agg.Tick()
	test.ExpectEquality(t, agg.State(), aggregator.Streaming)

	// draining ends with the start of frame
	agg.Evaluate()
	test.ExpectSuccess(t, agg.Output().User)
	test.ExpectEquality(t, agg.Output().Data, axis.Pixel(0))
	agg.Tick()
	test.ExpectEquality(t, agg.Mismatches(), 0)

	// statistics are cleared by reset
	agg.SetReset(false)
	agg.Evaluate()
	agg.Tick()
	test.ExpectEquality(t, agg.Abandoned(), 0)
	test.ExpectEquality(t, agg.Dropped(0), 0)
}

// verifyCaptured checks every frame held by the capture renderer
func verifyCaptured(t *testing.T, b *hardware.AggregatorBench) {
	t.Helper()
	frames := b.Capture.Frames()
	test.ExpectInequality(t, len(frames), 0)
	for _, f := range frames {
		test.ExpectSuccess(t, b.Verify(f), f.Num)
	}
}

func TestSourceResetIdle(t *testing.T) {
	var delayed [aggregator.NumInputs][]testbench.SourceOption
	for i := range delayed {
		delayed[i] = []testbench.SourceOption{testbench.WithDelay(10)}
	}
	b := newBench(t, config{width: 16, height: 4, offsets: offsets, source: delayed})

	b.SetSourceReset(1, false)
	test.DemandSuccess(t, hardware.RunForCycles(b, 20))
	test.ExpectEquality(t, b.Aggregator.State(), aggregator.WaitStartOfFrame)
	test.ExpectEquality(t, b.Frames(), 0)
	test.ExpectEquality(t, b.Aggregator.Abandoned(), 0)

	sof := b.Aggregator.StartOfFrame()
	test.ExpectSuccess(t, sof[0])
	test.ExpectFailure(t, sof[1])

	b.SetSourceReset(1, true)
	test.DemandSuccess(t, hardware.RunForFrameCount(b, 2, nil))
	test.ExpectEquality(t, b.Aggregator.Frames(), 2)
	test.ExpectEquality(t, b.Aggregator.Abandoned(), 0)
	test.ExpectEquality(t, b.Aggregator.Mismatches(), 0)
	verifyCaptured(t, b)
}

func TestSourceResetStreaming(t *testing.T) {
	b := newBench(t, config{width: 16, height: 4, offsets: offsets})

	// part way through the first row of input 1
	test.DemandSuccess(t, hardware.RunForCycles(b, 14))
	test.DemandEquality(t, b.Aggregator.State(), aggregator.Streaming)

	b.SetSourceReset(1, false)
	test.DemandSuccess(t, hardware.RunForCycles(b, 3))
	test.ExpectEquality(t, b.Aggregator.State(), aggregator.WaitStartOfFrame)
	test.ExpectEquality(t, b.Aggregator.Abandoned(), 1)
	test.ExpectFailure(t, b.Aggregator.Output().Valid)

	b.SetSourceReset(1, true)
	test.DemandSuccess(t, hardware.RunForFrameCount(b, 3, nil))
	test.ExpectEquality(t, b.Frames(), 3)
	test.ExpectEquality(t, b.Aggregator.Frames(), 3)
	test.ExpectEquality(t, b.Aggregator.Abandoned(), 1)
	test.ExpectEquality(t, b.Aggregator.Mismatches(), 0)

	// input 0 had sent the first row of its frame and the rest is drained.
	// input 1 restarts from the start of a frame
	test.ExpectEquality(t, b.Aggregator.Dropped(0), 8)
	test.ExpectEquality(t, b.Aggregator.Dropped(1), 0)
	test.ExpectEquality(t, b.Aggregator.Dropped(2), 0)
	test.ExpectEquality(t, b.Aggregator.Dropped(3), 0)
	verifyCaptured(t, b)

	// the bench reset clears the statistics
	test.DemandSuccess(t, b.Reset(2))
	test.ExpectEquality(t, b.Aggregator.Abandoned(), 0)
	test.ExpectEquality(t, b.Aggregator.Dropped(0), 0)
}

func TestSourceResetHeldOutput(t *testing.T) {
	var stall bool
	ready := func() bool { return !stall }
	b := newBench(t, config{width: 16, height: 4, offsets: offsets, ready: ready})

	test.DemandSuccess(t, hardware.RunForCycles(b, 14))

	stall = true
	test.DemandSuccess(t, b.Step())
	out := b.Aggregator.Output()
	test.DemandSuccess(t, out.Stalled())
	held := out.Transaction

	// the stalled transaction is offered until it is accepted. the checker on
	// the output fails the step if it is not
	b.SetSourceReset(1, false)
	for range 3 {
		test.DemandSuccess(t, b.Step())
		test.ExpectSuccess(t, out.Valid)
		test.ExpectEquality(t, out.Transaction, held)
		test.ExpectSuccess(t, b.Aggregator.Abandoning())
	}
	test.ExpectEquality(t, b.Aggregator.State(), aggregator.WaitStartOfFrame)

	stall = false
	test.DemandSuccess(t, b.Step())
	test.ExpectSuccess(t, out.Accepted())
	test.ExpectFailure(t, b.Aggregator.Abandoning())
	test.DemandSuccess(t, b.Step())
	test.ExpectFailure(t, out.Valid)

	b.SetSourceReset(1, true)
	test.DemandSuccess(t, hardware.RunForFrameCount(b, 2, nil))
	test.ExpectEquality(t, b.Aggregator.Mismatches(), 0)
	verifyCaptured(t, b)
}

func TestSourceResetBackpressure(t *testing.T) {
	rnd := random.NewRandom(2)
	for _, ready := range []testbench.ReadyFunc{
		testbench.EveryOther(),
		testbench.Random(rnd, 0.5),
	} {
		b := newBench(t, config{width: 16, height: 4, offsets: offsets, ready: ready})
		for i := range aggregator.NumInputs {
			test.DemandSuccess(t, hardware.RunForCycles(b, 11+i*7))
			b.SetSourceReset(i, false)
			test.DemandSuccess(t, hardware.RunForCycles(b, 2))
			b.SetSourceReset(i, true)
		}
		test.DemandSuccess(t, hardware.RunForFrameCount(b, 2, nil))
		test.ExpectEquality(t, b.Aggregator.Mismatches(), 0)
		verifyCaptured(t, b)
	}
}

func TestSourceResetHeldStart(t *testing.T) {
	stall := true
	ready := func() bool { return !stall }
	b := newBench(t, config{width: 16, height: 4, offsets: offsets, ready: ready})

	// the start of the frame is offered but not accepted
	firstOutput(t, b)
	out := b.Aggregator.Output()
	test.DemandSuccess(t, out.Stalled())
	test.DemandSuccess(t, out.User)

	b.SetSourceReset(2, false)
	test.DemandSuccess(t, hardware.RunForCycles(b, 2))
	test.ExpectSuccess(t, out.User)

	// the held start of frame is followed by a complete frame
	stall = false
	test.DemandSuccess(t, b.Step())
	test.ExpectSuccess(t, out.Accepted())
	b.SetSourceReset(2, true)
	test.DemandSuccess(t, hardware.RunForFrameCount(b, 2, nil))
	test.ExpectEquality(t, b.Aggregator.Abandoned(), 1)
	test.ExpectEquality(t, b.Aggregator.Mismatches(), 0)
	verifyCaptured(t, b)
}
