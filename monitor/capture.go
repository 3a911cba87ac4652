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

package monitor

import (
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/specification"
)

// Frame is a complete frame rebuilt by the monitor.
type Frame struct {
	Num    int
	Spec   specification.Spec
	Pixels []axis.Pixel
}

// At returns the pixel at the row and column.
func (f Frame) At(row, col int) axis.Pixel {
	return f.Pixels[row*f.Spec.Width+col]
}

// Row returns the pixels of a single row.
func (f Frame) Row(row int) []axis.Pixel {
	return f.Pixels[row*f.Spec.Width : (row+1)*f.Spec.Width]
}

// Capture is a PixelRenderer that keeps the most recent complete frames.
type Capture struct {
	spec   specification.Spec
	max    int
	frames []Frame
	pixels []axis.Pixel
}

// NewCapture is the preferred method of initialisation for the Capture type.
// The max argument is the number of frames to keep. A value of less than one
// keeps only the most recent frame.
func NewCapture(max int) *Capture {
	if max < 1 {
		max = 1
	}
	return &Capture{
		max: max,
	}
}

// Frames returns the captured frames, oldest first.
func (cpt *Capture) Frames() []Frame {
	return cpt.frames
}

// Last returns the most recent complete frame. The second return value is
// false if no frame has been captured.
func (cpt *Capture) Last() (Frame, bool) {
	if len(cpt.frames) == 0 {
		return Frame{}, false
	}
	return cpt.frames[len(cpt.frames)-1], true
}

// Resize implements the PixelRenderer interface.
func (cpt *Capture) Resize(spec specification.Spec) error {
	cpt.spec = spec
	cpt.frames = cpt.frames[:0]
	cpt.pixels = make([]axis.Pixel, spec.PixelsPerFrame())
	return nil
}

// NewFrame implements the PixelRenderer interface.
func (cpt *Capture) NewFrame(frameNum int) error {
	cpt.frames = append(cpt.frames, Frame{
		Num:    frameNum - 1,
		Spec:   cpt.spec,
		Pixels: cpt.pixels,
	})
	if len(cpt.frames) > cpt.max {
		cpt.frames = cpt.frames[1:]
	}
	cpt.pixels = make([]axis.Pixel, cpt.spec.PixelsPerFrame())
	return nil
}

// SetPixel implements the PixelRenderer interface.
func (cpt *Capture) SetPixel(c coords.Coords, p axis.Pixel) error {
	i := c.Row*cpt.spec.Width + c.Col
	if i < len(cpt.pixels) {
		cpt.pixels[i] = p
	}
	return nil
}
