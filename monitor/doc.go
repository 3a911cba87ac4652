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

// Package monitor watches a channel and rebuilds the frames carried by it.
// Rebuilt pixels are passed to any number of PixelRenderer implementations.
// The Capture type is a PixelRenderer that keeps the most recent frames for
// inspection, and the Analyse() function summarises a captured frame.
//
// The video digest in the digest package and the PNG export in the screenshot
// package are both driven by a Monitor.
package monitor
