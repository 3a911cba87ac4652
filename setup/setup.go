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

package setup

import (
	"fmt"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware"
	"github.com/jetsetilly/axisim/hardware/aggregator"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/random"
	"github.com/jetsetilly/axisim/testbench"
)

// Sentinal error returned when a configuration cannot be used to create a
// bench.
const SetupError = "setup: %v"

// Backpressure is the sink configuration common to both benches.
type Backpressure struct {
	Mode        testbench.Backpressure
	Probability float64
}

// TPG configures a TPGBench.
type TPG struct {
	Width     int
	Height    int
	DataWidth int

	Pattern   pattern.Kind
	Bars      int
	BarPolicy pattern.BarPolicy
	Solid     axis.Pixel

	Backpressure
	Seed int64
}

// DefaultTPG is a 256x256 RGB888 color bar frame with eight bars of 32
// columns.
var DefaultTPG = TPG{
	Width:     256,
	Height:    256,
	DataWidth: 24,
	Pattern:   pattern.ColorBars,
	Bars:      pattern.MaxBars,
	Solid:     pattern.Palette[0],
	Backpressure: Backpressure{
		Probability: 0.3,
	},
}

func (cfg TPG) String() string {
	return fmt.Sprintf("%dx%dx%d %s bars=%d %s bp=%s", cfg.Width, cfg.Height, cfg.DataWidth,
		cfg.Pattern, cfg.Bars, cfg.BarPolicy, cfg.Mode)
}

// NewTPGBench creates a reset TPGBench from the configuration.
func NewTPGBench(cfg TPG, perm logger.Permission) (*hardware.TPGBench, error) {
	spec, err := specification.NewSpec(cfg.Width, cfg.Height, cfg.DataWidth)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	rnd := random.NewRandom(cfg.Seed)

	gen, err := pattern.NewGenerator(spec,
		pattern.WithBars(cfg.Bars),
		pattern.WithBarPolicy(cfg.BarPolicy),
		pattern.WithSolid(cfg.Solid),
		pattern.WithRandom(rnd),
	)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	b, err := hardware.NewTPGBench(gen, testbench.NewReady(cfg.Mode, rnd, cfg.Probability), perm)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}
	b.TPG.SetSelect(cfg.Pattern.Select())

	if err := b.Reset(ResetCycles); err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	return b, nil
}

// ResetCycles is the number of cycles the reset signal is held low by the
// NewTPGBench() and NewAggregatorBench() functions.
const ResetCycles = 5

// Images selects the images sent by the sources of the aggregator bench.
type Images int

// List of valid Images values.
const (
	// counter images offset by 0, 1000, 2000 and 3000
	OffsetCounters Images = iota

	// counter, gradient, random and counter
	Mixed
)

func (img Images) String() string {
	switch img {
	case OffsetCounters:
		return "offset"
	case Mixed:
		return "mixed"
	}
	return "unknown"
}

// ImagesFromString returns the Images value with the matching name.
func ImagesFromString(s string) (Images, error) {
	switch s {
	case "offset":
		return OffsetCounters, nil
	case "mixed":
		return Mixed, nil
	}
	return OffsetCounters, fmt.Errorf("unknown images: %s", s)
}

// CounterOffsets are the offsets of the OffsetCounters images.
var CounterOffsets = [aggregator.NumInputs]axis.Pixel{0, 1000, 2000, 3000}

// Aggregate configures an AggregatorBench.
type Aggregate struct {
	Width     int
	Height    int
	DataWidth int

	Tiling aggregator.Tiling
	Resync bool
	Images Images

	// the first source is delayed by this number of cycles
	Skew int

	Backpressure
	Seed int64
}

// DefaultAggregate is a 640x480 frame of 32 bit pixels built from four
// 320x240 counter images.
var DefaultAggregate = Aggregate{
	Width:     640,
	Height:    480,
	DataWidth: 32,
	Backpressure: Backpressure{
		Probability: 0.3,
	},
}

func (cfg Aggregate) String() string {
	return fmt.Sprintf("%dx%dx%d %s images=%s skew=%d resync=%v bp=%s", cfg.Width, cfg.Height, cfg.DataWidth,
		cfg.Tiling, cfg.Images, cfg.Skew, cfg.Resync, cfg.Mode)
}

// NewAggregatorBench creates a reset AggregatorBench from the configuration.
func NewAggregatorBench(cfg Aggregate, perm logger.Permission) (*hardware.AggregatorBench, error) {
	spec, err := specification.NewSpec(cfg.Width, cfg.Height, cfg.DataWidth)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	opts := []aggregator.Option{aggregator.WithTiling(cfg.Tiling)}
	if cfg.Resync {
		opts = append(opts, aggregator.WithResync())
	}

	agg, err := aggregator.NewAggregator(spec, perm, opts...)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	rnd := random.NewRandom(cfg.Seed)

	gen, err := pattern.NewGenerator(agg.SubImage(), pattern.WithRandom(rnd))
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	var images [aggregator.NumInputs]testbench.Image
	switch cfg.Images {
	case Mixed:
		images[0] = testbench.NewImage(gen, pattern.Counter, 0)
		images[1] = testbench.NewImage(gen, pattern.Gradient, 0)
		images[2] = testbench.NewImage(gen, pattern.Random, 0)
		images[3] = testbench.NewImage(gen, pattern.Counter, 0)
	default:
		for i := range images {
			images[i] = testbench.NewImage(gen, pattern.Counter, CounterOffsets[i])
		}
	}

	var sources [aggregator.NumInputs]*testbench.Source
	for i := range sources {
		var opts []testbench.SourceOption
		if i == 0 && cfg.Skew > 0 {
			opts = append(opts, testbench.WithDelay(cfg.Skew))
		}
		sources[i] = testbench.NewSource(fmt.Sprintf("s%d", i), images[i], opts...)
	}

	b, err := hardware.NewAggregatorBench(agg, sources, testbench.NewReady(cfg.Mode, rnd, cfg.Probability), perm)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	if err := b.Reset(ResetCycles); err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	return b, nil
}
