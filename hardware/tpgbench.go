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

	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/hardware/tpg"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/testbench"
)

// TPGBench connects a test pattern generator to a sink.
type TPGBench struct {
	TPG *tpg.TPG
	Output

	rstn  bool
	cycle int
}

// NewTPGBench is the preferred method of initialisation for the TPGBench
// type. A nil ReadyFunc means the sink never applies backpressure. The TPG is
// created enabled but held in reset until Reset() is called.
func NewTPGBench(gen *pattern.Generator, ready testbench.ReadyFunc, perm logger.Permission) (*TPGBench, error) {
	g, err := tpg.NewTPG(gen, perm)
	if err != nil {
		return nil, err
	}
	g.SetEnable(true)

	out, err := newOutput("tpg", g.Output(), gen.Spec(), ready, perm)
	if err != nil {
		return nil, err
	}

	return &TPGBench{
		TPG:    g,
		Output: out,
	}, nil
}

func (b *TPGBench) String() string {
	return fmt.Sprintf("cycle %d: %s", b.cycle, b.TPG)
}

// Cycle returns the number of cycles stepped since the bench was created.
func (b *TPGBench) Cycle() int {
	return b.cycle
}

// Reset holds the reset signal low for the number of cycles and then releases
// it. The checker, monitor and digest are reset on release.
func (b *TPGBench) Reset(cycles int) error {
	b.rstn = false
	b.TPG.SetReset(false)
	for range cycles {
		if err := b.Step(); err != nil {
			return err
		}
	}
	b.rstn = true
	b.TPG.SetReset(true)
	return b.Output.reset()
}

// Step the bench by one cycle.
func (b *TPGBench) Step() error {
	b.TPG.Drive()
	b.Sink.Drive()

	if b.rstn {
		if err := b.check(); err != nil {
			return err
		}
	}

	b.TPG.Tick()
	b.cycle++

	return nil
}
