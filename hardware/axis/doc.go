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

// Package axis models an AXI-Stream style channel. The channel is the only
// means by which hardware components in the simulation communicate.
//
// A producer asserts Valid when it has a transaction to offer and places the
// data and markers on the channel. Once offered, a transaction must be held
// unchanged until it is accepted. A consumer asserts Ready when it can accept
// a transaction. It may deassert Ready at any time (backpressure). A
// transaction is accepted on any cycle where Valid and Ready are both true.
//
// Two markers accompany the data word. Last marks the final pixel of a row
// and User marks the first pixel of a frame.
//
// The Checker type watches a channel and reports protocol violations. Any
// violation is returned as an error and should be treated as fatal.
package axis
