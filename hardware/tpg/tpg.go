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

package tpg

import (
	"fmt"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/logger"
)

// TPG is the test pattern generator. Pixels from a pattern.Generator are
// streamed in raster order on the master channel. Frames are generated
// continuously for as long as the TPG is enabled.
type TPG struct {
	gen *pattern.Generator

	// the master channel. the TPG drives Valid and the transaction, the
	// downstream consumer drives Ready
	m axis.Channel

	// registered output. placed on the channel by Drive()
	out      axis.Transaction
	outValid bool

	// inputs. sampled on the clock edge
	rstn bool
	en   bool
	sel  uint8

	// position of the next pixel to be loaded into the output register
	cursor coords.Coords

	// pattern latched at the start of the current frame
	kind pattern.Kind

	// number of frames started since reset
	frames int

	// logging permission for per-frame events
	perm logger.Permission
}

// NewTPG is the preferred method of initialisation for the TPG type. The TPG
// starts in the reset state with the enable input deasserted.
func NewTPG(gen *pattern.Generator, perm logger.Permission) (*TPG, error) {
	if gen == nil {
		return nil, curated.Errorf("tpg: pattern generator is required")
	}
	if perm == nil {
		perm = logger.Deny
	}
	tpg := &TPG{
		gen:  gen,
		perm: perm,
	}
	return tpg, nil
}

func (tpg *TPG) String() string {
	return fmt.Sprintf("TPG %s %s [%s] next=%s", tpg.gen.Spec(), tpg.kind, tpg.m.String(), tpg.cursor)
}

// Spec returns the specification of the frames being generated.
func (tpg *TPG) Spec() specification.Spec {
	return tpg.gen.Spec()
}

// Output returns the master channel of the TPG.
func (tpg *TPG) Output() *axis.Channel {
	return &tpg.m
}

// SetReset sets the active-low reset input.
func (tpg *TPG) SetReset(rstn bool) {
	tpg.rstn = rstn
}

// SetEnable sets the enable input.
func (tpg *TPG) SetEnable(en bool) {
	tpg.en = en
}

// SetSelect sets the pattern select input. The new pattern is used from the
// start of the next frame.
func (tpg *TPG) SetSelect(sel uint8) {
	tpg.sel = sel
}

// Pattern returns the pattern of the current frame.
func (tpg *TPG) Pattern() pattern.Kind {
	return tpg.kind
}

// Cursor returns the position of the next pixel to be offered.
func (tpg *TPG) Cursor() coords.Coords {
	return tpg.cursor
}

// Frames returns the number of frames started since the last reset.
func (tpg *TPG) Frames() int {
	return tpg.frames
}

// Drive places the registered transaction on the master channel. Called at
// the start of every cycle, before the consumer decides on Ready.
func (tpg *TPG) Drive() {
	if tpg.outValid {
		tpg.m.Offer(tpg.out)
	} else {
		tpg.m.Idle()
	}
}

// Tick is the rising edge of the clock.
func (tpg *TPG) Tick() {
	if !tpg.rstn {
		tpg.cursor.Reset()
		tpg.frames = 0
		tpg.outValid = false
		tpg.out = axis.Transaction{}
		return
	}

	// an offered transaction is held until it is accepted
	if tpg.outValid && !tpg.m.Accepted() {
		return
	}

	if !tpg.en {
		tpg.outValid = false
		tpg.out = axis.Transaction{}
		return
	}

	spec := tpg.gen.Spec()

	if tpg.cursor.StartOfFrame() {
		tpg.kind = pattern.KindFromSelect(tpg.sel)
		tpg.frames++
		logger.Logf(tpg.perm, "tpg", "frame %d: %s", tpg.cursor.Frame, tpg.kind)
	}

	tpg.out = axis.Transaction{
		Data: tpg.gen.Pixel(tpg.kind, tpg.cursor),
		Last: tpg.cursor.EndOfRow(spec.Width),
		User: tpg.cursor.StartOfFrame(),
	}
	tpg.outValid = true

	tpg.cursor.Advance(spec.Width, spec.Height)
}
