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

package screenshot_test

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/monitor"
	"github.com/jetsetilly/axisim/screenshot"
	"github.com/jetsetilly/axisim/test"
)

func bars(t *testing.T) monitor.Frame {
	t.Helper()
	spec, err := specification.NewSpec(4, 2, 24)
	test.DemandSuccess(t, err)
	f := monitor.Frame{Spec: spec}
	row := []axis.Pixel{pattern.Palette[0], pattern.Palette[1], pattern.Palette[6], pattern.Palette[7]}
	for range spec.Height {
		f.Pixels = append(f.Pixels, row...)
	}
	return f
}

func TestImage(t *testing.T) {
	f := bars(t)

	img, err := screenshot.Image(f, 3)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 12)
	test.ExpectEquality(t, img.Bounds().Dy(), 6)

	// third bar is blue. scaled pixels keep the color
	c := img.RGBAAt(7, 5)
	test.ExpectEquality(t, c.R, uint8(0))
	test.ExpectEquality(t, c.G, uint8(0))
	test.ExpectEquality(t, c.B, uint8(255))

	_, err = screenshot.Image(f, 0)
	test.ExpectSuccess(t, curated.Is(err, screenshot.InvalidScale))

	_, err = screenshot.Image(monitor.Frame{}, 1)
	test.ExpectSuccess(t, curated.Is(err, screenshot.NoFrame))
}

func TestEncode(t *testing.T) {
	f := bars(t)

	var b bytes.Buffer
	test.DemandSuccess(t, screenshot.Encode(&b, f, 1))

	img, err := png.Decode(&b)
	test.DemandSuccess(t, err)
	r, g, bl, _ := img.At(1, 0).RGBA()
	test.ExpectEquality(t, r>>8, uint32(255))
	test.ExpectEquality(t, g>>8, uint32(255))
	test.ExpectEquality(t, bl>>8, uint32(0))
}

func TestSave(t *testing.T) {
	f := bars(t)
	fn := filepath.Join(t.TempDir(), "frame.png")

	test.DemandSuccess(t, screenshot.Save(fn, f, 2))

	err := screenshot.Save(fn, f, 2)
	test.ExpectSuccess(t, curated.Is(err, screenshot.FileExists))
}
