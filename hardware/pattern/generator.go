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

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/random"
)

// Sentinal error patterns.
const (
	InvalidOption = "pattern: %s"
)

// Generator produces a single pixel value at a time for a frame of a fixed
// specification. It has no state that changes after creation. The same
// arguments to Pixel() will always return the same value.
type Generator struct {
	spec specification.Spec

	solid  axis.Pixel
	bars   int
	policy BarPolicy
	rnd    *random.Random
}

// Option is used to configure the Generator on creation.
type Option func(*Generator) error

// WithSolid sets the value used by the Solid pattern. The default is white.
func WithSolid(p axis.Pixel) Option {
	return func(gen *Generator) error {
		gen.solid = p
		return nil
	}
}

// WithBars sets the number of color bars. The default is MaxBars.
func WithBars(bars int) Option {
	return func(gen *Generator) error {
		if bars < 1 || bars > MaxBars {
			return curated.Errorf(InvalidOption, fmt.Sprintf("number of bars must be between 1 and %d (%d)", MaxBars, bars))
		}
		gen.bars = bars
		return nil
	}
}

// WithBarPolicy sets how the remainder columns of color bars are assigned.
func WithBarPolicy(policy BarPolicy) Option {
	return func(gen *Generator) error {
		gen.policy = policy
		return nil
	}
}

// WithRandom sets the random number generator used by the Random pattern. If
// this option is not used then a generator with a zero seed is created.
func WithRandom(rnd *random.Random) Option {
	return func(gen *Generator) error {
		gen.rnd = rnd
		return nil
	}
}

// NewGenerator is the preferred method of initialisation for the Generator
// type.
func NewGenerator(spec specification.Spec, opts ...Option) (*Generator, error) {
	if err := spec.Validate(); err != nil {
		return nil, curated.Errorf("pattern: %v", err)
	}

	gen := &Generator{
		spec:  spec,
		solid: Palette[0],
		bars:  MaxBars,
	}

	for _, o := range opts {
		if err := o(gen); err != nil {
			return nil, err
		}
	}

	if gen.rnd == nil {
		gen.rnd = random.NewRandom(0)
	}

	return gen, nil
}

func (gen *Generator) String() string {
	s := strings.Builder{}
	s.WriteString(gen.spec.String())
	s.WriteString(fmt.Sprintf(" bars=%d (%s)", gen.bars, gen.policy))
	s.WriteString(fmt.Sprintf(" solid=%06x", uint32(gen.solid)))
	return s.String()
}

// Spec returns the specification of the frames being generated.
func (gen *Generator) Spec() specification.Spec {
	return gen.spec
}

// Bars returns the number of color bars and the column at which each bar
// starts.
func (gen *Generator) Bars() []int {
	starts := make([]int, 0, gen.bars)
	prev := -1
	for col := 0; col < gen.spec.Width; col++ {
		b := gen.policy.bar(col, gen.spec.Width, gen.bars)
		if b != prev {
			starts = append(starts, col)
			prev = b
		}
	}
	return starts
}

// Pixel returns the value of the pixel at the coordinates for the pattern. The
// frame field of the coordinates is only used by the Random pattern.
func (gen *Generator) Pixel(kind Kind, c coords.Coords) axis.Pixel {
	var p axis.Pixel

	switch kind {
	case ColorBars:
		p = Palette[gen.policy.bar(c.Col, gen.spec.Width, gen.bars)]
	case Gradient:
		r := uint8(c.Row * 255 / gen.spec.Height)
		g := uint8(c.Col * 255 / gen.spec.Width)
		p = PackRGB(r, g, 0)
	case Counter:
		p = axis.Pixel(uint64(c.Row)*uint64(gen.spec.Width) + uint64(c.Col))
	case Random:
		p = axis.Pixel(gen.rnd.Rewindable(c, gen.spec.Width, gen.spec.Height))
	default:
		p = gen.solid
	}

	return p & axis.Pixel(gen.spec.Mask())
}
