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

// Package coords represents and can work with raster coordinates.
//
// Coordinates are a measurement of time from the point of view of a video
// stream. They say which pixel of which frame is being, or is about to be,
// transferred. They are used by the pattern generator, by the frame monitor
// and by the random number generator.
package coords

import "fmt"

// Coords represents a position in a stream of frames.
type Coords struct {
	Frame int
	Row   int
	Col   int
}

func (c Coords) String() string {
	return fmt.Sprintf("Frame: %d  Row: %03d  Col: %03d", c.Frame, c.Row, c.Col)
}

// Advance moves the coordinates on by one pixel for a frame of the given
// dimensions. Returns true if the advance has moved the coordinates onto a new
// frame.
func (c *Coords) Advance(width, height int) bool {
	c.Col++
	if c.Col < width {
		return false
	}
	c.Col = 0
	c.Row++
	if c.Row < height {
		return false
	}
	c.Row = 0
	c.Frame++
	return true
}

// Reset coordinates to the first pixel of the first frame.
func (c *Coords) Reset() {
	*c = Coords{}
}

// StartOfFrame returns true if the coordinates point to the first pixel of a
// frame.
func (c Coords) StartOfFrame() bool {
	return c.Row == 0 && c.Col == 0
}

// EndOfRow returns true if the coordinates point to the last pixel in a row.
func (c Coords) EndOfRow(width int) bool {
	return c.Col == width-1
}

// Sum returns the coordinates as a single value. Frames are assumed to be of
// the given dimensions.
func (c Coords) Sum(width, height int) int64 {
	return (int64(c.Frame)*int64(height)+int64(c.Row))*int64(width) + int64(c.Col)
}
