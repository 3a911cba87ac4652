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

package aggregator

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/logger"
)

// Sentinal error patterns. All are configuration errors returned by
// NewAggregator().
const (
	InvalidSpec      = "aggregator: %v"
	SubImageMismatch = "aggregator: declared sub-image %dx%d does not match frame %s"
)

// State of the aggregator's state machine.
type State int

// List of valid State values.
const (
	// waiting for every input to offer a start-of-frame transaction
	WaitStartOfFrame State = iota

	// passing pixels from the inputs to the output in raster order
	Streaming
)

func (s State) String() string {
	switch s {
	case WaitStartOfFrame:
		return "WaitStartOfFrame"
	case Streaming:
		return "Streaming"
	}
	return "unknown"
}

// Aggregator merges four quadrant streams into a single stream of the full
// frame. There is no buffering. Each pixel passes directly from an input to
// the output on the cycle it is accepted.
type Aggregator struct {
	// the output frame and the frame of each input
	spec specification.Spec
	sub  specification.Spec

	tiling Tiling
	resync bool

	// slave channels (inputs) and the master channel (output)
	s [NumInputs]axis.Channel
	m axis.Channel

	// reset inputs. the aggregator reset and the reset qualification of each
	// input
	rstn      bool
	inputRstn [NumInputs]bool

	state State

	// latched when an input offers a start-of-frame transaction while in the
	// WaitStartOfFrame state. cleared on reset and on entering Streaming
	sof [NumInputs]bool

	// position in the output frame and in each of the input frames
	cursor coords.Coords
	inputs [NumInputs]coords.Coords

	// the input selected by Evaluate() for this cycle
	sel int

	// inputs that are to be drained up to their next start-of-frame
	// transaction. set for every input when a frame is abandoned
	drain [NumInputs]bool

	// an output transaction that was offered but not accepted on the
	// previous cycle. it is offered again when the output is not passing
	// through from an input
	hold    axis.Transaction
	holding bool

	// statistics
	frames     int
	waiting    int
	dropped    [NumInputs]int
	mismatches int
	abandoned  int

	perm logger.Permission
}

// Option is used to configure the Aggregator on creation.
type Option func(*Aggregator) error

// WithTiling sets the tiling policy. The default is RowMajor.
func WithTiling(tl Tiling) Option {
	return func(agg *Aggregator) error {
		if tl != RowMajor && tl != ColumnMajor {
			return curated.Errorf(InvalidSpec, fmt.Sprintf("unsupported tiling (%d)", int(tl)))
		}
		agg.tiling = tl
		return nil
	}
}

// WithSubImage declares the size of the input images. The declaration must be
// consistent with the size of the output frame.
func WithSubImage(width, height int) Option {
	return func(agg *Aggregator) error {
		if width != agg.sub.Width || height != agg.sub.Height {
			return curated.Errorf(SubImageMismatch, width, height, agg.spec)
		}
		return nil
	}
}

// WithResync allows inputs that are offering data in the middle of a frame to
// be drained while the aggregator is waiting for the start of a frame. The
// drained transactions are dropped.
func WithResync() Option {
	return func(agg *Aggregator) error {
		agg.resync = true
		return nil
	}
}

// NewAggregator is the preferred method of initialisation for the Aggregator
// type. The specification is of the output frame. Both the width and the
// height must be even. The aggregator starts in the WaitStartOfFrame state.
func NewAggregator(spec specification.Spec, perm logger.Permission, opts ...Option) (*Aggregator, error) {
	if err := spec.Validate(); err != nil {
		return nil, curated.Errorf(InvalidSpec, err)
	}

	sub, err := spec.Half()
	if err != nil {
		return nil, curated.Errorf(InvalidSpec, err)
	}

	if perm == nil {
		perm = logger.Deny
	}

	agg := &Aggregator{
		spec: spec,
		sub:  sub,
		perm: perm,
	}
	for i := range agg.inputRstn {
		agg.inputRstn[i] = true
	}

	for _, o := range opts {
		if err := o(agg); err != nil {
			return nil, err
		}
	}

	return agg, nil
}

func (agg *Aggregator) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("Aggregator %s %s %s", agg.spec, agg.tiling, agg.state))
	if agg.state == WaitStartOfFrame {
		s.WriteString(" sof=")
		for i := range agg.sof {
			if agg.sof[i] {
				s.WriteString(fmt.Sprintf("%d", i))
			} else {
				s.WriteString("-")
			}
		}
	} else {
		s.WriteString(fmt.Sprintf(" out=%s in=%d", agg.cursor, agg.sel))
	}
	return s.String()
}

// Spec returns the specification of the output frame.
func (agg *Aggregator) Spec() specification.Spec {
	return agg.spec
}

// SubImage returns the specification of the input frames.
func (agg *Aggregator) SubImage() specification.Spec {
	return agg.sub
}

// Tiling returns the tiling policy.
func (agg *Aggregator) Tiling() Tiling {
	return agg.tiling
}

// Input returns the slave channel for the numbered input.
func (agg *Aggregator) Input(i int) *axis.Channel {
	return &agg.s[i]
}

// Output returns the master channel.
func (agg *Aggregator) Output() *axis.Channel {
	return &agg.m
}

// SetReset sets the active-low reset input.
func (agg *Aggregator) SetReset(rstn bool) {
	agg.rstn = rstn
}

// SetInputReset sets the active-low reset qualification of a single input.
// While an input is held in reset it is never made ready and its
// start-of-frame flag and position are cleared.
//
// Asserting the reset of any input while streaming abandons the output frame.
// The other inputs are drained up to their next start-of-frame transaction and
// the aggregator waits for all four inputs to be aligned again.
func (agg *Aggregator) SetInputReset(i int, rstn bool) {
	agg.inputRstn[i] = rstn
}

// State returns the current state of the state machine.
func (agg *Aggregator) State() State {
	return agg.state
}

// StartOfFrame returns the latched start-of-frame flags.
func (agg *Aggregator) StartOfFrame() [NumInputs]bool {
	return agg.sof
}

// Cursor returns the position in the output frame of the next pixel.
func (agg *Aggregator) Cursor() coords.Coords {
	return agg.cursor
}

// InputCursor returns the position in the input frame of the next pixel to be
// taken from the numbered input.
func (agg *Aggregator) InputCursor(i int) coords.Coords {
	return agg.inputs[i]
}

// Frames returns the number of output frames completed since reset.
func (agg *Aggregator) Frames() int {
	return agg.frames
}

// Stalled returns the number of cycles the aggregator has been waiting for the
// remaining inputs after at least one input has offered a start-of-frame
// transaction. An input that never offers start-of-frame will cause this
// value to increase forever.
func (agg *Aggregator) Stalled() int {
	return agg.waiting
}

// Dropped returns the number of transactions drained from the input while
// resynchronising or after an abandoned frame. Always zero if the
// WithResync() option was not used and no input was reset while streaming.
func (agg *Aggregator) Dropped(i int) int {
	return agg.dropped[i]
}

// Mismatches returns the number of input transactions whose markers did not
// agree with the position in the input frame.
func (agg *Aggregator) Mismatches() int {
	return agg.mismatches
}

// Abandoned returns the number of output frames that were not completed
// because an input was reset.
func (agg *Aggregator) Abandoned() int {
	return agg.abandoned
}

// Abandoning returns true while the last transaction offered for an abandoned
// frame is waiting to be accepted.
func (agg *Aggregator) Abandoning() bool {
	return agg.state == WaitStartOfFrame && agg.holding
}

// inputReset returns true if any input is being held in reset
func (agg *Aggregator) inputReset() bool {
	for _, rstn := range agg.inputRstn {
		if !rstn {
			return true
		}
	}
	return false
}

// selected returns the input that owns the current output position
func (agg *Aggregator) selected() int {
	qx := 0
	if agg.cursor.Col >= agg.sub.Width {
		qx = 1
	}
	qy := 0
	if agg.cursor.Row >= agg.sub.Height {
		qy = 1
	}
	return agg.tiling.Input(qx, qy)
}

// Evaluate is the combinational logic of the aggregator. Should be called
// every cycle after the inputs have offered their transactions and the
// downstream consumer has decided on the Ready signal of the output.
func (agg *Aggregator) Evaluate() {
	for i := range agg.s {
		agg.s[i].Ready = false
	}
	agg.m.Idle()

	if !agg.rstn {
		return
	}

	switch agg.state {
	case WaitStartOfFrame:
		if agg.holding {
			agg.m.Offer(agg.hold)
		}
		for i := range agg.s {
			if !agg.resync && !agg.drain[i] {
				continue
			}
			if agg.inputRstn[i] && !agg.sof[i] && agg.s[i].Valid && !agg.s[i].User {
				agg.s[i].Ready = true
			}
		}

	case Streaming:
		// the frame will be abandoned at the clock edge
		if agg.inputReset() {
			if agg.holding {
				agg.m.Offer(agg.hold)
			}
			return
		}

		agg.sel = agg.selected()
		in := &agg.s[agg.sel]
		if in.Valid {
			agg.m.Offer(axis.Transaction{
				Data: in.Data,
				Last: agg.cursor.EndOfRow(agg.spec.Width),
				User: agg.cursor.StartOfFrame(),
			})
		}
		in.Ready = agg.m.Ready
	}
}

// Tick is the rising edge of the clock.
func (agg *Aggregator) Tick() {
	if !agg.rstn {
		agg.state = WaitStartOfFrame
		agg.cursor.Reset()
		for i := range agg.inputs {
			agg.inputs[i].Reset()
			agg.sof[i] = false
		}
		agg.frames = 0
		agg.waiting = 0
		agg.mismatches = 0
		agg.abandoned = 0
		agg.dropped = [NumInputs]int{}
		agg.drain = [NumInputs]bool{}
		agg.holding = false
		return
	}

	agg.holding = agg.m.Stalled()
	agg.hold = agg.m.Transaction

	for i := range agg.inputRstn {
		if !agg.inputRstn[i] {
			agg.sof[i] = false
			agg.inputs[i].Reset()
		}
	}

	switch agg.state {
	case WaitStartOfFrame:
		agg.tickWait()
	case Streaming:
		if agg.inputReset() {
			agg.abandon()
			return
		}
		agg.tickStreaming()
	}
}

// abandon the output frame and wait for the inputs to be aligned again
func (agg *Aggregator) abandon() {
	logger.Logf(agg.perm, "aggregator", "input reset: frame %d abandoned at %s", agg.frames, agg.cursor)

	agg.state = WaitStartOfFrame
	agg.abandoned++
	agg.waiting = 0

	agg.cursor.Reset()

	for i := range agg.inputs {
		agg.inputs[i].Reset()
		agg.sof[i] = false
		agg.drain[i] = true
	}
}

func (agg *Aggregator) tickWait() {
	anyLatched := false
	all := true

	for i := range agg.s {
		if !agg.inputRstn[i] {
			all = false
			continue
		}

		in := &agg.s[i]
		if in.Valid && in.User {
			if !agg.sof[i] {
				logger.Logf(agg.perm, "aggregator", "input %d offering start of frame", i)
			}
			agg.sof[i] = true
			agg.drain[i] = false
		} else if in.Accepted() {
			agg.dropped[i]++
		}

		anyLatched = anyLatched || agg.sof[i]
		all = all && agg.sof[i]
	}

	// a held output transaction must be accepted before the next frame
	if all && !agg.holding {
		logger.Logf(agg.perm, "aggregator", "all inputs aligned after %d cycles: streaming frame %d", agg.waiting, agg.frames)
		agg.state = Streaming
		agg.waiting = 0
		for i := range agg.sof {
			agg.sof[i] = false
		}
		return
	}

	if anyLatched {
		agg.waiting++
	}
}

func (agg *Aggregator) tickStreaming() {
	if !agg.m.Accepted() {
		return
	}

	// the markers on the input are not forwarded but they should agree with
	// the position in the input frame
	in := &agg.s[agg.sel]
	pos := agg.inputs[agg.sel]
	if in.User != pos.StartOfFrame() || in.Last != pos.EndOfRow(agg.sub.Width) {
		agg.mismatches++
		logger.Logf(agg.perm, "aggregator", "input %d: markers do not match position (%s) at %s", agg.sel, in.Transaction, pos)
	}
	agg.inputs[agg.sel].Advance(agg.sub.Width, agg.sub.Height)

	if agg.cursor.Advance(agg.spec.Width, agg.spec.Height) {
		agg.frames++
		agg.state = WaitStartOfFrame
		logger.Logf(agg.perm, "aggregator", "frame %d complete", agg.frames)
	}
}
