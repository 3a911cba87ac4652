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

// PixelRenderer implementations receive every pixel accepted on the monitored
// channel.
type PixelRenderer interface {
	// Resize is called when the monitor is attached and whenever it is reset.
	// Renderers should allocate their frame buffers here.
	Resize(spec specification.Spec) error

	// NewFrame is called after the last pixel of a frame has been passed to
	// SetPixel(). The frameNum argument is the number of the frame that is
	// about to start.
	NewFrame(frameNum int) error

	// SetPixel is called for every pixel in the frame. Pixels arrive in
	// raster order.
	SetPixel(c coords.Coords, p axis.Pixel) error
}
