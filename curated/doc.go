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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a pattern and placeholder values in the same
// way as fmt.Errorf().
//
// The pattern identifies the error. Packages export the patterns they use as
// string constants so that callers can test for them:
//
//	const StabilityViolation = "axis: %s: stalled transaction changed (%s)"
//
//	if curated.Is(err, axis.StabilityViolation) {
//		...
//	}
//
// Has() is similar to Is() but looks for the pattern anywhere in the chain of
// wrapped curated errors.
//
// The Error() implementation normalises the chain by removing adjacent
// duplicate parts. Parts are separated by the sub-string ": ". This means
// that the question of whether to wrap an error at every level of the call
// stack doesn't need much thought. For example:
//
//	curated.Errorf("bench: %v", curated.Errorf("bench: reset too short"))
//
// prints as
//
//	bench: reset too short
//
// and not
//
//	bench: bench: reset too short
package curated
