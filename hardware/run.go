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

package hardware

import (
	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/govern"
)

// Bench is implemented by TPGBench and AggregatorBench.
type Bench interface {
	Reset(cycles int) error
	Step() error
	Cycle() int
	Frames() int
}

// Run steps the bench until the continueCheck function returns the Ending
// state. The continueCheck function is called after every cycle. A nil
// continueCheck function runs forever.
func Run(b Bench, continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			if err := b.Step(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("bench: unsupported state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount steps the bench until the specified number of frames have
// been seen on the output. The continueCheck function is called after every
// cycle with the number of frames seen so far and can end the run early.
func RunForFrameCount(b Bench, numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	frameNum := b.Frames()
	targetFrame := frameNum + numFrames

	state := govern.Running
	for frameNum < targetFrame && state != govern.Ending {
		if state == govern.Running {
			if err := b.Step(); err != nil {
				return err
			}
		}

		frameNum = b.Frames()

		var err error
		state, err = continueCheck(frameNum)
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForCycles steps the bench for the specified number of cycles.
func RunForCycles(b Bench, numCycles int) error {
	for range numCycles {
		if err := b.Step(); err != nil {
			return err
		}
	}
	return nil
}
