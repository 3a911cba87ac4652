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

package testbench

import (
	"fmt"

	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/hardware/specification"
)

// Image is a frame sent by a Source. Pixel values are taken from a pattern
// generator and offset by a constant.
type Image struct {
	gen    *pattern.Generator
	kind   pattern.Kind
	offset axis.Pixel
}

// NewImage is the preferred method of initialisation for the Image type.
func NewImage(gen *pattern.Generator, kind pattern.Kind, offset axis.Pixel) Image {
	return Image{
		gen:    gen,
		kind:   kind,
		offset: offset,
	}
}

func (img Image) String() string {
	if img.offset == 0 {
		return img.kind.String()
	}
	return fmt.Sprintf("%s+%d", img.kind, img.offset)
}

// Spec returns the specification of the image.
func (img Image) Spec() specification.Spec {
	return img.gen.Spec()
}

// Pixel returns the value of the pixel at the coordinates. The frame field of
// the coordinates is only significant for random images.
func (img Image) Pixel(c coords.Coords) axis.Pixel {
	return (img.gen.Pixel(img.kind, c) + img.offset) & axis.Pixel(img.gen.Spec().Mask())
}
