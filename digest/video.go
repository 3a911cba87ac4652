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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/specification"
)

// Sentinal error returned when the digest cannot be chained.
const VideoDigest = "video digest: %s"

// Video is an implementation of the monitor.PixelRenderer interface. It
// generates a SHA-1 value of the image every frame. The value of each frame
// is chained to the value of the previous frame so that the final value
// depends on every frame seen.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
type Video struct {
	spec   specification.Spec
	digest [sha1.Size]byte
	pixels []byte
	frames int
}

const pixelDepth = 4

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

func (dig *Video) String() string {
	return fmt.Sprintf("%s (%d frames)", dig.Hash(), dig.frames)
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.frames = 0
}

// Frames returns the number of frames included in the digest.
func (dig *Video) Frames() int {
	return dig.frames
}

// Resize implements monitor.PixelRenderer interface.
func (dig *Video) Resize(spec specification.Spec) error {
	dig.spec = spec

	// length of pixels array contains enough room for the previous frames
	// digest value
	dig.pixels = make([]byte, len(dig.digest)+spec.PixelsPerFrame()*pixelDepth)
	return nil
}

// NewFrame implements monitor.PixelRenderer interface.
func (dig *Video) NewFrame(_ int) error {
	// chain fingerprints by copying the value of the last fingerprint
	// to the head of the video data
	n := copy(dig.pixels, dig.digest[:])
	if n != len(dig.digest) {
		return curated.Errorf(VideoDigest, "digest error during new frame")
	}
	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++
	return nil
}

// SetPixel implements monitor.PixelRenderer interface.
func (dig *Video) SetPixel(c coords.Coords, p axis.Pixel) error {
	// preserve the first few bytes for a chained fingerprint
	i := len(dig.digest)
	i += (c.Row*dig.spec.Width + c.Col) * pixelDepth

	if i <= len(dig.pixels)-pixelDepth {
		binary.LittleEndian.PutUint32(dig.pixels[i:], uint32(p))
	}

	return nil
}
