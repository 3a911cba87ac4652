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

package random

import (
	"math/rand/v2"
	"time"

	"github.com/jetsetilly/axisim/hardware/coords"
)

// the base seed for all random numbers where the seed has not been specified
var baseSeed uint64

// initialise base seed
func init() {
	baseSeed = uint64(time.Now().UnixNano())
}

// Random is a random number generator that can be sensitive to raster
// coordinates.
type Random struct {
	seed uint64
	seq  *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type. A
// seed of zero means that the base seed for the program will be used.
func NewRandom(seed int64) *Random {
	rnd := &Random{
		seed: uint64(seed),
	}
	if seed == 0 {
		rnd.seed = baseSeed
	}
	rnd.seq = rand.New(rand.NewPCG(rnd.seed, ^rnd.seed))
	return rnd
}

// Seed returns the seed actually being used by the generator.
func (rnd *Random) Seed() int64 {
	return int64(rnd.seed)
}

// Rewindable returns a random value for the coordinates in frames of the
// given dimensions. The same value will be returned for the same coordinates.
func (rnd *Random) Rewindable(c coords.Coords, width, height int) uint32 {
	pcg := rand.NewPCG(rnd.seed, uint64(c.Sum(width, height)))
	return uint32(pcg.Uint64() >> 32)
}

// NoRewind returns the next random number in the range [0,n) from the
// generator's sequence.
func (rnd *Random) NoRewind(n int) int {
	return rnd.seq.IntN(n)
}

// Float64 returns the next random number in the range [0.0,1.0) from the
// generator's sequence.
func (rnd *Random) Float64() float64 {
	return rnd.seq.Float64()
}
