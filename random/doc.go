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

// Package random should be used in preference to the math/rand package when a
// random number is required inside the simulation.
//
// There are two functions belonging to the Random type that return random
// numbers:
//
// Rewindable() returns numbers based on raster coordinates. The number will
// always be the same for the same coordinates and seed. The pattern generator
// uses this so that backpressure, which changes when a pixel is produced but
// not where it is in the frame, never changes the value of the pixel.
//
// NoRewind() returns the next number in a sequence. The sequence is the same
// for the same seed. Used by the test bench for randomised backpressure.
//
// A seed of zero means that the seed is chosen when the program starts. Use
// a non-zero seed when the same numbers are required every time. This is
// useful for testing and for regression entries.
package random
