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

// Package logger is the central log for the application. Log entries are
// made up of a tag and a detail string. Adjacent entries with the same tag
// and detail are folded into a single entry with a repeat count.
//
// Logging requests carry a Permission. The Allow value always allows logging
// and the Deny value never does. Other implementations can decide
// dynamically. For example, the simulation benches allow per-cycle logging
// from the hardware components only when the verbose flag has been set.
//
// The central log keeps a fixed number of entries. Older entries are dropped
// as new ones are added.
package logger
