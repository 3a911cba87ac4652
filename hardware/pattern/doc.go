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

// Package pattern produces pixel values for the test patterns. A Generator is
// configured for a frame specification and then asked for the value of
// individual pixels. It has no knowledge of how or when the pixels are
// streamed.
//
// The patterns are:
//
//	solid      a constant value (white by default)
//	colorbars  vertical bars of the colours in Palette
//	gradient   red increases down the frame, green increases across it
//	counter    row * width + col, for checking pixel order
//	random     a random value for every pixel
//
// All values are masked to the data width of the specification. The colour
// patterns are packed as RGB888 with red in bits 23 to 16.
//
// The random pattern takes its values from a random.Random instance. The
// values depend only on the seed and the coordinates of the pixel, including
// the frame number.
package pattern
