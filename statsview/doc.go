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

// Package statsview serves runtime statistics of the running program (memory,
// goroutines and garbage collection) to a web browser. The server is only
// available when the program is built with the statsview build tag:
//
//	go build -tags statsview
//
// Without the tag the Launch() function does nothing and Available() returns
// false.
package statsview

// Address of the statsview server.
const Address = "localhost:12600"
