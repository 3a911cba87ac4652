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

package monitor

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/pattern"
)

// Bar is a run of identical pixels on the first row of a frame.
type Bar struct {
	Start int
	Width int
	Color axis.Pixel
}

func (b Bar) String() string {
	r, g, bl := pattern.RGB(b.Color)
	return fmt.Sprintf("col %d-%d RGB(%d,%d,%d)", b.Start, b.Start+b.Width-1, r, g, bl)
}

// Summary of a captured frame.
type Summary struct {
	Pixels       int
	UniqueColors int
	Bars         []Bar
}

// Analyse a frame. Bars are detected from the color transitions on the first
// row.
func Analyse(f Frame) Summary {
	s := Summary{
		Pixels: len(f.Pixels),
	}

	unique := make(map[axis.Pixel]bool)
	for _, p := range f.Pixels {
		unique[p] = true
	}
	s.UniqueColors = len(unique)

	if f.Spec.Height == 0 || f.Spec.Width == 0 {
		return s
	}

	row := f.Row(0)
	start := 0
	for col := 1; col <= len(row); col++ {
		if col == len(row) || row[col] != row[start] {
			s.Bars = append(s.Bars, Bar{
				Start: start,
				Width: col - start,
				Color: row[start],
			})
			start = col
		}
	}

	return s
}

// PixelsPerBar is the average width of the detected bars.
func (s Summary) PixelsPerBar() int {
	if len(s.Bars) == 0 {
		return 0
	}
	w := 0
	for _, b := range s.Bars {
		w += b.Width
	}
	return w / len(s.Bars)
}

func (s Summary) String() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("pixels: %d\n", s.Pixels))
	b.WriteString(fmt.Sprintf("unique colors: %d\n", s.UniqueColors))
	b.WriteString(fmt.Sprintf("bars: %d (~%d pixels per bar)\n", len(s.Bars), s.PixelsPerBar()))
	for i, bar := range s.Bars {
		b.WriteString(fmt.Sprintf("  %d: %s\n", i, bar))
	}
	return b.String()
}
