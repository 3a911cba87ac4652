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

package aggregator

import (
	"fmt"
	"strings"
)

// NumInputs is the number of input streams merged by the aggregator.
const NumInputs = 4

// Tiling decides which quadrant of the output frame is taken from which input.
type Tiling int

// List of valid Tiling values.
const (
	// input 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right
	RowMajor Tiling = iota

	// input 0 top-left, 1 bottom-left, 2 top-right, 3 bottom-right
	ColumnMajor
)

func (tl Tiling) String() string {
	switch tl {
	case RowMajor:
		return "rowmajor"
	case ColumnMajor:
		return "columnmajor"
	}
	return fmt.Sprintf("unknown (%d)", int(tl))
}

// TilingFromString returns the Tiling with the matching name.
func TilingFromString(s string) (Tiling, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "rowmajor":
		return RowMajor, nil
	case "columnmajor":
		return ColumnMajor, nil
	}
	return RowMajor, fmt.Errorf("unknown tiling: %s", s)
}

// Input returns the input number for the quadrant. qx and qy are zero for the
// left and top quadrants and one for the right and bottom quadrants.
func (tl Tiling) Input(qx, qy int) int {
	if tl == ColumnMajor {
		return qx*2 + qy
	}
	return qy*2 + qx
}

// Quadrant returns the position of the quadrant for the input. The inverse of
// the Input() function.
func (tl Tiling) Quadrant(input int) (qx, qy int) {
	if tl == ColumnMajor {
		return input / 2, input % 2
	}
	return input % 2, input / 2
}
