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

// Package hardware is the base package for the simulated hardware. The
// components themselves are in the sub-packages. This package contains the
// benches that connect the components together and step them.
//
// A bench is stepped one clock cycle at a time. Every cycle runs in the same
// order:
//
//  1. producers place their registered outputs on their channels
//  2. consumers decide the Ready signal of their channels
//  3. combinational logic is evaluated
//  4. conformance checkers and monitors inspect the settled channels
//  5. the clock edge. every clocked component updates its registers
//
// A protocol violation found by a checker is returned from Step() and ends the
// run.
//
// The Run() function steps a bench until a continueCheck function returns the
// govern.Ending state. The RunForFrameCount() and RunForCycles() functions
// are more convenient for tests and for the command line modes.
package hardware
