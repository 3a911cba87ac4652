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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/aggregator"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/monitor"
	"github.com/jetsetilly/axisim/testbench"
)

// Sentinal error patterns for the aggregator bench.
const (
	SourceMismatch    = "bench: source %d: %s does not match sub-image %s"
	CompositeMismatch = "bench: composite: %d pixels differ (first at row %d col %d: %#x, expected %#x)"
)

// AggregatorBench connects four sources to the aggregator and the output of
// the aggregator to a sink.
type AggregatorBench struct {
	Aggregator *aggregator.Aggregator
	Sources    [aggregator.NumInputs]*testbench.Source
	Inputs     [aggregator.NumInputs]*axis.Checker
	Output

	rstn    bool
	srcRstn [aggregator.NumInputs]bool
	cycle   int

	// the number of abandoned frames at the end of the previous cycle
	abandoned int
}

// NewAggregatorBench is the preferred method of initialisation for the
// AggregatorBench type. The image of every source must have the
// specification of the aggregator's sub-image. A nil ReadyFunc means the sink
// never applies backpressure.
func NewAggregatorBench(agg *aggregator.Aggregator, sources [aggregator.NumInputs]*testbench.Source,
	ready testbench.ReadyFunc, perm logger.Permission) (*AggregatorBench, error) {

	for i, src := range sources {
		if src == nil {
			return nil, curated.Errorf(SourceMismatch, i, "missing source", agg.SubImage())
		}
		if src.Image().Spec() != agg.SubImage() {
			return nil, curated.Errorf(SourceMismatch, i, src.Image().Spec(), agg.SubImage())
		}
	}

	out, err := newOutput("aggregator", agg.Output(), agg.Spec(), ready, perm)
	if err != nil {
		return nil, err
	}

	b := &AggregatorBench{
		Aggregator: agg,
		Sources:    sources,
		Output:     out,
	}

	for i := range b.Inputs {
		b.Inputs[i] = axis.NewChecker(fmt.Sprintf("s%d", i), agg.Input(i))
	}

	return b, nil
}

func (b *AggregatorBench) String() string {
	return fmt.Sprintf("cycle %d: %s", b.cycle, b.Aggregator)
}

// Cycle returns the number of cycles stepped since the bench was created.
func (b *AggregatorBench) Cycle() int {
	return b.cycle
}

// SetSourceReset controls the reset of a single source. The aggregator input
// is reset with it. Asserting the reset while the aggregator is streaming
// abandons the output frame.
func (b *AggregatorBench) SetSourceReset(i int, rstn bool) {
	b.Sources[i].SetReset(rstn)
	b.Aggregator.SetInputReset(i, rstn)
	b.srcRstn[i] = rstn
	if rstn {
		b.Inputs[i].Reset()
	}
}

// Reset holds the reset signal of the aggregator and every source low for the
// number of cycles and then releases it.
func (b *AggregatorBench) Reset(cycles int) error {
	b.rstn = false
	b.Aggregator.SetReset(false)
	for i := range b.Sources {
		b.SetSourceReset(i, false)
	}

	for range cycles {
		if err := b.Step(); err != nil {
			return err
		}
	}

	b.rstn = true
	b.Aggregator.SetReset(true)
	for i := range b.Sources {
		b.SetSourceReset(i, true)
	}
	return b.Output.reset()
}

// Step the bench by one cycle.
func (b *AggregatorBench) Step() error {
	// sources drive their own channel. the signals are transferred to the
	// aggregator's slave channels
	for i, src := range b.Sources {
		src.Drive()
		in := b.Aggregator.Input(i)
		in.Transaction = src.Output().Transaction
		in.Valid = src.Output().Valid
	}

	b.Sink.Drive()
	b.Aggregator.Evaluate()

	for i, src := range b.Sources {
		src.Output().Ready = b.Aggregator.Input(i).Ready
	}

	if b.rstn {
		for i, chk := range b.Inputs {
			if !b.srcRstn[i] {
				continue
			}
			if err := chk.Check(); err != nil {
				return err
			}
		}
		if err := b.check(); err != nil {
			return err
		}
	}

	// the tail of an abandoned frame can be accepted on this cycle
	tail := b.Aggregator.Abandoning()

	for _, src := range b.Sources {
		src.Tick()
	}
	b.Aggregator.Tick()
	b.cycle++

	n := b.Aggregator.Abandoned()
	if n > b.abandoned || tail {
		b.Checker.Restart()
	}
	b.abandoned = n

	return nil
}

// Expected returns the value the aggregator should produce at the position in
// the output frame.
func (b *AggregatorBench) Expected(c coords.Coords) axis.Pixel {
	sub := b.Aggregator.SubImage()
	qx := c.Col / sub.Width
	qy := c.Row / sub.Height
	i := b.Aggregator.Tiling().Input(qx, qy)
	return b.Sources[i].Image().Pixel(coords.Coords{
		Frame: c.Frame,
		Row:   c.Row - qy*sub.Height,
		Col:   c.Col - qx*sub.Width,
	})
}

// Verify compares a captured output frame with the composite of the source
// images.
func (b *AggregatorBench) Verify(f monitor.Frame) error {
	var bad int
	var first coords.Coords
	var got, want axis.Pixel

	c := coords.Coords{Frame: f.Num}
	for row := range f.Spec.Height {
		for col := range f.Spec.Width {
			c.Row = row
			c.Col = col
			exp := b.Expected(c)
			if f.At(row, col) != exp {
				if bad == 0 {
					first = c
					got = f.At(row, col)
					want = exp
				}
				bad++
			}
		}
	}

	if bad > 0 {
		return curated.Errorf(CompositeMismatch, bad, first.Row, first.Col, uint32(got), uint32(want))
	}
	return nil
}
