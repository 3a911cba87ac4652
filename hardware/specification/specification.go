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

package specification

import (
	"fmt"

	"github.com/jetsetilly/axisim/curated"
)

// Sentinal error patterns returned by NewSpec().
const (
	InvalidSpec = "specification: %s"
)

// MaxDataWidth is the widest pixel that can be carried by the channel.
// Pixels are packed into at most four bytes.
const MaxDataWidth = 32

// Spec describes the frame format of a video stream. Values are fixed when
// the hardware is created and are never changed afterwards.
type Spec struct {
	// number of pixels in a row and number of rows in a frame
	Width  int
	Height int

	// number of significant bits in every pixel
	DataWidth int
}

// NewSpec is the preferred method of initialisation for the Spec type. It
// returns an error if the values do not describe a valid frame format.
func NewSpec(width, height, dataWidth int) (Spec, error) {
	spec := Spec{
		Width:     width,
		Height:    height,
		DataWidth: dataWidth,
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate returns an error if the specification is not usable.
func (spec Spec) Validate() error {
	if spec.Width <= 0 {
		return curated.Errorf(InvalidSpec, fmt.Sprintf("width must be positive (%d)", spec.Width))
	}
	if spec.Height <= 0 {
		return curated.Errorf(InvalidSpec, fmt.Sprintf("height must be positive (%d)", spec.Height))
	}
	if spec.DataWidth <= 0 || spec.DataWidth > MaxDataWidth {
		return curated.Errorf(InvalidSpec, fmt.Sprintf("data width must be between 1 and %d (%d)", MaxDataWidth, spec.DataWidth))
	}
	return nil
}

// Mask returns the value that every pixel value is reduced by.
func (spec Spec) Mask() uint32 {
	return uint32((uint64(1) << spec.DataWidth) - 1)
}

// PixelsPerFrame returns the number of pixels in a single frame.
func (spec Spec) PixelsPerFrame() int {
	return spec.Width * spec.Height
}

// Half returns the specification of a quarter of the frame. ie. half the
// width and half the height. The function returns an error if the frame
// cannot be divided exactly.
func (spec Spec) Half() (Spec, error) {
	if spec.Width%2 != 0 || spec.Height%2 != 0 {
		return Spec{}, curated.Errorf(InvalidSpec, fmt.Sprintf("%s cannot be divided into quadrants", spec))
	}
	return NewSpec(spec.Width/2, spec.Height/2, spec.DataWidth)
}

func (spec Spec) String() string {
	return fmt.Sprintf("%dx%d (%d bit)", spec.Width, spec.Height, spec.DataWidth)
}
