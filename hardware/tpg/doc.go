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

// Package tpg implements the test pattern generator. The generator streams
// the frames of a pattern.Generator on an axis.Channel, one pixel per
// accepted transaction.
//
// The TPG is a clocked component. Drive() must be called at the start of every
// cycle to place the registered output on the channel and Tick() must be
// called at the end of the cycle, after the consumer has decided whether to
// accept the transaction.
//
// Inputs are the active-low reset, the enable and the pattern select. All are
// sampled by Tick(). The pattern select is latched at the start of each frame
// so a frame is never made up of more than one pattern.
//
// Disabling the TPG does not withdraw a transaction that has already been
// offered. The transaction is held until it is accepted and only then is
// Valid deasserted.
package tpg
