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

package pattern

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/axisim/hardware/axis"
)

// Palette is the canonical list of color bar colours as RGB888 values. The
// red component is in the most significant byte.
var Palette = [...]axis.Pixel{
	0xffffff, // white
	0xffff00, // yellow
	0x00ffff, // cyan
	0x00ff00, // green
	0xff00ff, // magenta
	0xff0000, // red
	0x0000ff, // blue
	0x000000, // black
}

// MaxBars is the maximum number of color bars that can be generated. One for
// every entry in the palette.
const MaxBars = len(Palette)

// BarPolicy decides how columns are assigned to color bars when the width of
// the frame is not an exact multiple of the number of bars.
type BarPolicy int

// List of valid BarPolicy values.
const (
	// bar index is col*bars/width. any extra columns are spread over all bars
	Proportional BarPolicy = iota

	// every bar is width/bars columns wide. any extra columns are given to the
	// last bar
	RemainderLast
)

func (p BarPolicy) String() string {
	switch p {
	case Proportional:
		return "proportional"
	case RemainderLast:
		return "remainderlast"
	}
	return "unknown"
}

// BarPolicyFromString returns the BarPolicy with the matching name.
func BarPolicyFromString(s string) (BarPolicy, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "proportional":
		return Proportional, nil
	case "remainderlast":
		return RemainderLast, nil
	}
	return Proportional, fmt.Errorf("unknown bar policy: %s", s)
}

// bar returns the bar index for the column
func (p BarPolicy) bar(col, width, bars int) int {
	switch p {
	case RemainderLast:
		w := width / bars
		if w == 0 {
			return min(col, bars-1)
		}
		return min(col/w, bars-1)
	}
	return col * bars / width
}

// RGB splits an RGB888 pixel into its components.
func RGB(p axis.Pixel) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// PackRGB creates an RGB888 pixel from its components.
func PackRGB(r, g, b uint8) axis.Pixel {
	return axis.Pixel(r)<<16 | axis.Pixel(g)<<8 | axis.Pixel(b)
}
