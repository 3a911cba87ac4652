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
	"github.com/jetsetilly/axisim/digest"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/monitor"
	"github.com/jetsetilly/axisim/testbench"
)

// MaxCapturedFrames is the number of frames kept by the Capture renderer of
// a bench.
const MaxCapturedFrames = 4

// Output is the downstream side of a bench. The sink drives the Ready signal
// of the channel. Every accepted transaction is checked for conformance and
// passed to the monitor, which rebuilds the frames for the capture and digest
// renderers.
type Output struct {
	Sink    *testbench.Sink
	Checker *axis.Checker
	Monitor *monitor.Monitor
	Capture *monitor.Capture
	Digest  *digest.Video
}

func newOutput(name string, ch *axis.Channel, spec specification.Spec, ready testbench.ReadyFunc, perm logger.Permission) (Output, error) {
	out := Output{
		Sink:    testbench.NewSink(ch, ready),
		Checker: axis.NewFramingChecker(name, ch, spec),
		Monitor: monitor.NewMonitor(name, ch, spec, perm),
		Capture: monitor.NewCapture(MaxCapturedFrames),
		Digest:  digest.NewVideo(),
	}
	if err := out.Monitor.AddPixelRenderer(out.Capture); err != nil {
		return Output{}, err
	}
	if err := out.Monitor.AddPixelRenderer(out.Digest); err != nil {
		return Output{}, err
	}
	return out, nil
}

// Frames returns the number of complete frames seen on the output.
func (out *Output) Frames() int {
	return out.Monitor.Frames()
}

// check is called every cycle after all signals have settled.
func (out *Output) check() error {
	if err := out.Checker.Check(); err != nil {
		return err
	}
	return out.Monitor.Check()
}

// reset is called when the bench's reset is released.
func (out *Output) reset() error {
	out.Checker.Reset()
	out.Digest.ResetDigest()
	return out.Monitor.Reset()
}
