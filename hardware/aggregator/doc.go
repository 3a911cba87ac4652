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

// Package aggregator implements the image aggregator. Four input streams, each
// carrying one quadrant of the frame, are merged into a single output stream
// of the full frame.
//
// The aggregator has two states. In the WaitStartOfFrame state no input is
// made ready. Each input offering a start-of-frame transaction has that fact
// latched and is held, by the normal rules of the channel protocol, until the
// other inputs are also offering start-of-frame. When all four have been
// latched the state changes to Streaming. An input that offers start-of-frame
// early therefore waits for the others without losing any data. An input that
// never offers start-of-frame stalls the aggregator forever. The Stalled()
// function reports how long the aggregator has been waiting.
//
// In the Streaming state the output frame is produced in raster order. The
// input owning the quadrant of the current output position is passed
// directly to the output and made ready only if the output is ready. All
// other inputs are held. The output Last marker is set at the end of each
// output row and the User marker on the first pixel of the frame. After the
// last pixel of the frame has been accepted the state returns to
// WaitStartOfFrame.
//
// The quadrant assignment is decided by the Tiling policy. RowMajor is the
// default.
//
// The WithResync() option allows an input that is offering transactions from
// the middle of a frame to be drained while waiting for the start of a frame.
// Without the option such an input stalls the aggregator.
//
// Resetting an input while streaming abandons the output frame. A transaction
// that was stalled on the output is offered until it is accepted. The other
// inputs are then drained up to their next start-of-frame and the aggregator
// returns to WaitStartOfFrame.
package aggregator
