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

// Package testbench contains the stimulus side of the simulation: sources
// that send frames onto a channel, sinks that drive the Ready signal of a
// channel, and the ReadyFunc generators that decide when a sink applies
// backpressure.
//
// Sources and sinks are stepped in the same way as the hardware. Drive() is
// called at the start of the cycle and Tick() on the rising edge of the clock.
package testbench
