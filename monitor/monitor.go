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

package monitor

import (
	"fmt"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/hardware/axis"
	"github.com/jetsetilly/axisim/hardware/coords"
	"github.com/jetsetilly/axisim/hardware/specification"
	"github.com/jetsetilly/axisim/logger"
)

// Sentinal error returned by Check() when a renderer fails.
const RendererError = "monitor: %s: %v"

// Monitor rebuilds frames from the transactions accepted on a channel and
// passes the pixels to the attached renderers.
//
// Rows are delimited by the Last marker and frames by the User marker. Pixels
// beyond the width of the frame are discarded and short rows are left
// unfilled. Transactions accepted before the first User marker are ignored.
type Monitor struct {
	name string
	ch   *axis.Channel
	spec specification.Spec

	// position of the next pixel in the frame being rebuilt
	cursor coords.Coords

	// set once the first User marker has been seen
	synced bool

	// number of complete frames and irregular rows since reset
	frames   int
	short    int
	long     int
	unsynced int

	renderers []PixelRenderer

	perm logger.Permission
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(name string, ch *axis.Channel, spec specification.Spec, perm logger.Permission) *Monitor {
	if perm == nil {
		perm = logger.Deny
	}
	return &Monitor{
		name: name,
		ch:   ch,
		spec: spec,
		perm: perm,
	}
}

func (mon *Monitor) String() string {
	return fmt.Sprintf("%s: %d frames, next %s", mon.name, mon.frames, mon.cursor)
}

// Spec returns the specification of the frames being rebuilt.
func (mon *Monitor) Spec() specification.Spec {
	return mon.spec
}

// AddPixelRenderer registers a renderer. The renderer's Resize() function is
// called immediately.
func (mon *Monitor) AddPixelRenderer(r PixelRenderer) error {
	for _, e := range mon.renderers {
		if e == r {
			return nil
		}
	}
	if err := r.Resize(mon.spec); err != nil {
		return curated.Errorf(RendererError, mon.name, err)
	}
	mon.renderers = append(mon.renderers, r)
	return nil
}

// Reset forgets the frame being rebuilt. Renderers are resized.
func (mon *Monitor) Reset() error {
	mon.cursor.Reset()
	mon.synced = false
	mon.frames = 0
	mon.short = 0
	mon.long = 0
	mon.unsynced = 0
	for _, r := range mon.renderers {
		if err := r.Resize(mon.spec); err != nil {
			return curated.Errorf(RendererError, mon.name, err)
		}
	}
	return nil
}

// Frames returns the number of complete frames seen since reset.
func (mon *Monitor) Frames() int {
	return mon.frames
}

// Irregular returns the number of short and long rows seen since reset.
func (mon *Monitor) Irregular() (short int, long int) {
	return mon.short, mon.long
}

// Unsynced returns the number of transactions ignored because they arrived
// before the first User marker.
func (mon *Monitor) Unsynced() int {
	return mon.unsynced
}

// Check should be called once per cycle after the channel has settled and
// before the clock edge.
func (mon *Monitor) Check() error {
	if !mon.ch.Accepted() {
		return nil
	}

	tr := mon.ch.Transaction

	if tr.User {
		if mon.synced && !mon.cursor.StartOfFrame() {
			logger.Logf(mon.perm, mon.name, "start of frame at %s: frame abandoned", mon.cursor)
			mon.cursor.Row = 0
			mon.cursor.Col = 0
		}
		mon.synced = true
	}

	if !mon.synced {
		mon.unsynced++
		return nil
	}

	if mon.cursor.Col < mon.spec.Width {
		for _, r := range mon.renderers {
			if err := r.SetPixel(mon.cursor, tr.Data); err != nil {
				return curated.Errorf(RendererError, mon.name, err)
			}
		}
	}

	if !tr.Last {
		mon.cursor.Col++
		return nil
	}

	if mon.cursor.Col < mon.spec.Width-1 {
		mon.short++
		logger.Logf(mon.perm, mon.name, "short row (%d pixels) at %s", mon.cursor.Col+1, mon.cursor)
	} else if mon.cursor.Col > mon.spec.Width-1 {
		mon.long++
		logger.Logf(mon.perm, mon.name, "long row (%d pixels) at %s", mon.cursor.Col+1, mon.cursor)
	}

	mon.cursor.Col = 0
	mon.cursor.Row++
	if mon.cursor.Row < mon.spec.Height {
		return nil
	}

	mon.cursor.Row = 0
	mon.cursor.Frame++
	mon.frames++
	logger.Logf(mon.perm, mon.name, "frame %d complete", mon.frames)

	for _, r := range mon.renderers {
		if err := r.NewFrame(mon.cursor.Frame); err != nil {
			return curated.Errorf(RendererError, mon.name, err)
		}
	}

	return nil
}
