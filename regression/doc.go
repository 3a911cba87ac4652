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

// Package regression facilitates the regression testing of the benches. Each
// entry in the regression database is the configuration of a bench, the
// number of frames to run and the video digest produced by that run. Running
// the test again must produce the same digest.
//
// Entries that use random backpressure or random images require a non-zero
// seed so that the run can be repeated.
//
// The regression database is stored in the resource directory (see the paths
// package).
package regression
