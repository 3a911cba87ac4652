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

package coords_test

import (
	"testing"

	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/test"
)

func TestAdvance(t *testing.T) {
	var c coords.Coords
	test.ExpectSuccess(t, c.StartOfFrame())

	test.ExpectFailure(t, c.Advance(2, 2))
	test.ExpectEquality(t, c, coords.Coords{Frame: 0, Row: 0, Col: 1})
	test.ExpectSuccess(t, c.EndOfRow(2))

	test.ExpectFailure(t, c.Advance(2, 2))
	test.ExpectEquality(t, c, coords.Coords{Frame: 0, Row: 1, Col: 0})

	test.ExpectFailure(t, c.Advance(2, 2))
	test.ExpectSuccess(t, c.Advance(2, 2))
	test.ExpectEquality(t, c, coords.Coords{Frame: 1, Row: 0, Col: 0})
	test.ExpectSuccess(t, c.StartOfFrame())

	c.Reset()
	test.ExpectEquality(t, c, coords.Coords{})
}

func TestSum(t *testing.T) {
	a := coords.Coords{Frame: 1, Row: 2, Col: 3}
	test.ExpectEquality(t, a.Sum(10, 10), int64(123))

	// consecutive positions have consecutive sums across frame boundaries
	b := coords.Coords{Frame: 1, Row: 9, Col: 9}
	s := b.Sum(10, 10)
	b.Advance(10, 10)
	test.ExpectEquality(t, b.Sum(10, 10), s+1)
}
