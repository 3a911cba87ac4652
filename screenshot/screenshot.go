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

package screenshot

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/monitor"
)

// Sentinal error patterns.
const (
	NoFrame       = "screenshot: no frame to save"
	InvalidScale  = "screenshot: invalid scale (%d)"
	FileExists    = "screenshot: image file (%s) already exists"
	EncodeError   = "screenshot: %v"
)

// MaxScale is the largest scaling factor accepted by Image() and Save().
const MaxScale = 8

// Image converts the frame to an RGBA image. Pixels are interpreted as packed
// 8 bit RGB values. The image is scaled by the scaling factor with nearest
// neighbour sampling so that the edges of color bars remain sharp.
func Image(f monitor.Frame, scale int) (*image.RGBA, error) {
	if scale < 1 || scale > MaxScale {
		return nil, curated.Errorf(InvalidScale, scale)
	}
	if len(f.Pixels) == 0 {
		return nil, curated.Errorf(NoFrame)
	}

	src := image.NewRGBA(image.Rect(0, 0, f.Spec.Width, f.Spec.Height))
	for row := 0; row < f.Spec.Height; row++ {
		for col := 0; col < f.Spec.Width; col++ {
			r, g, b := pattern.RGB(f.At(row, col))
			src.SetRGBA(col, row, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	if scale == 1 {
		return src, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, f.Spec.Width*scale, f.Spec.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Encode writes the frame as a PNG image.
func Encode(w io.Writer, f monitor.Frame, scale int) error {
	img, err := Image(f, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return curated.Errorf(EncodeError, err)
	}
	return nil
}

// Save writes the frame as a PNG image to the named file. An existing file
// will not be overwritten.
func Save(filename string, f monitor.Frame, scale int) error {
	fh, err := os.Open(filename)
	if fh != nil {
		fh.Close()
		return curated.Errorf(FileExists, filename)
	}
	if err != nil && !os.IsNotExist(err) {
		return curated.Errorf(EncodeError, err)
	}

	fh, err = os.Create(filename)
	if err != nil {
		return curated.Errorf(EncodeError, err)
	}
	defer fh.Close()

	return Encode(fh, f, scale)
}
