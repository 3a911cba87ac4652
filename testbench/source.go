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

	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/specification"
)

// Source drives frames of an Image onto a channel. The first pixel of each
// frame has the User marker and the last pixel of each row has the Last
// marker. The output is registered in the same way as the pattern generator.
type Source struct {
	name string
	img  Image
	spec specification.Spec

	m axis.Channel

	out      axis.Transaction
	outValid bool

	rstn   bool
	cursor coords.Coords

	// the position of the first pixel sent after reset
	start coords.Coords

	// number of cycles after reset before the first transaction
	delay int
	wait  int

	// the number of frames to send. zero means unlimited
	frames int
	loaded int

	// decides whether a new transaction is offered. nil means always
	gaps ReadyFunc
}

// SourceOption is used to configure the Source on creation.
type SourceOption func(*Source)

// WithDelay delays the first transaction after reset by the number of cycles.
func WithDelay(cycles int) SourceOption {
	return func(src *Source) {
		src.delay = cycles
	}
}

// WithFrames limits the number of frames sent after reset.
func WithFrames(n int) SourceOption {
	return func(src *Source) {
		src.frames = n
	}
}

// WithGaps inserts cycles without a valid transaction whenever the ReadyFunc
// returns false.
func WithGaps(gaps ReadyFunc) SourceOption {
	return func(src *Source) {
		src.gaps = gaps
	}
}

// WithStart begins sending from a position other than the start of the
// frame.
func WithStart(row, col int) SourceOption {
	return func(src *Source) {
		src.start = coords.Coords{Row: row, Col: col}
	}
}

// NewSource is the preferred method of initialisation for the Source type.
func NewSource(name string, img Image, opts ...SourceOption) *Source {
	src := &Source{
		name: name,
		img:  img,
		spec: img.Spec(),
	}
	for _, o := range opts {
		o(src)
	}
	src.cursor = src.start
	src.wait = src.delay
	return src
}

func (src *Source) String() string {
	return fmt.Sprintf("%s: %s %s next=%s", src.name, src.img, src.m.String(), src.cursor)
}

// Output returns the master channel of the source.
func (src *Source) Output() *axis.Channel {
	return &src.m
}

// Image returns the image being sent.
func (src *Source) Image() Image {
	return src.img
}

// SetReset sets the active-low reset of the source.
func (src *Source) SetReset(rstn bool) {
	src.rstn = rstn
}

// Done returns true once every frame has been sent and accepted.
func (src *Source) Done() bool {
	return src.frames > 0 && src.loaded >= src.frames && !src.outValid
}

// Drive places the registered transaction on the channel.
func (src *Source) Drive() {
	if src.outValid {
		src.m.Offer(src.out)
	} else {
		src.m.Idle()
	}
}

// Tick is the rising edge of the clock.
func (src *Source) Tick() {
	if !src.rstn {
		src.cursor = src.start
		src.wait = src.delay
		src.loaded = 0
		src.outValid = false
		src.out = axis.Transaction{}
		return
	}

	if src.outValid && !src.m.Accepted() {
		return
	}

	if src.wait > 0 {
		src.wait--
		src.outValid = false
		return
	}

	if src.frames > 0 && src.loaded >= src.frames {
		src.outValid = false
		return
	}

	if src.gaps != nil && !src.gaps() {
		src.outValid = false
		return
	}

	src.out = axis.Transaction{
		Data: src.img.Pixel(src.cursor),
		Last: src.cursor.EndOfRow(src.spec.Width),
		User: src.cursor.StartOfFrame(),
	}
	src.outValid = true

	if src.cursor.Advance(src.spec.Width, src.spec.Height) {
		src.loaded++
	}
}

// Sink drives the Ready signal of a channel.
type Sink struct {
	ch    *axis.Channel
	ready ReadyFunc
}

// NewSink is the preferred method of initialisation for the Sink type. A nil
// ReadyFunc is the same as Always().
func NewSink(ch *axis.Channel, ready ReadyFunc) *Sink {
	if ready == nil {
		ready = Always()
	}
	return &Sink{
		ch:    ch,
		ready: ready,
	}
}

// Drive sets the Ready signal for the current cycle.
func (snk *Sink) Drive() {
	snk.ch.Ready = snk.ready()
}
