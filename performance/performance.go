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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/axisim/govern"
	"github.com/jetsetilly/axisim/hardware"
)

// Leadtime is the amount of time a bench runs for before measurement begins.
var Leadtime = 2 * time.Second

// the timer channel is checked once every brake cycles
const brake = 100

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// Result of a performance check.
type Result struct {
	Cycles   int
	Frames   int
	Duration time.Duration
}

func (r Result) String() string {
	cps, fps := CalcRate(r.Cycles, r.Frames, r.Duration.Seconds())
	return fmt.Sprintf("%.0f cycles/sec %.2f frames/sec (%d cycles, %d frames in %.2f seconds)",
		cps, fps, r.Cycles, r.Frames, r.Duration.Seconds())
}

// Check the performance of the supplied bench. The bench runs for the Leadtime
// and then for the specified duration. Cycles and frames are counted for the
// second period only.
func Check(output io.Writer, b hardware.Bench, profile Profile, duration string) (Result, error) {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return Result{}, fmt.Errorf("performance: %w", err)
	}

	startCycle := b.Cycle()
	startFrame := b.Frames()

	runner := func() error {
		// false is sent when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool)

		go func() {
			time.AfterFunc(Leadtime, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		performanceBrake := 0

		return hardware.Run(b, func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < brake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}
				startCycle = b.Cycle()
				startFrame = b.Frames()
			default:
			}

			return govern.Running, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return Result{}, fmt.Errorf("performance: %w", err)
	}

	res := Result{
		Cycles:   b.Cycle() - startCycle,
		Frames:   b.Frames() - startFrame,
		Duration: dur,
	}
	if output != nil {
		fmt.Fprintln(output, res)
	}

	return res, nil
}

// CalcRate takes the number of cycles and frames and the duration (in seconds)
// and returns the cycles-per-second and frames-per-second.
func CalcRate(numCycles int, numFrames int, duration float64) (cps float64, fps float64) {
	if duration <= 0 {
		return 0, 0
	}
	return float64(numCycles) / duration, float64(numFrames) / duration
}
