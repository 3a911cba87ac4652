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

package logger_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/test"
)

func TestTail(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "tpg", "frame 0 started")
	log.Log(logger.Allow, "aggregator", "input 2 offering start of frame")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tpg: frame 0 started\naggregator: input 2 offering start of frame\n")

	for _, n := range []int{100, 2} {
		w.Reset()
		log.Tail(w, n)
		test.ExpectEquality(t, w.String(), "tpg: frame 0 started\naggregator: input 2 offering start of frame\n", n)
	}

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "aggregator: input 2 offering start of frame\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

// a stalled bench logs the same message every cycle. the entries are folded
// into one
func TestRepeats(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	for range 3 {
		log.Log(logger.Allow, "bench", "output stalled")
	}
	log.Log(logger.Allow, "bench", "output accepted")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "bench: output stalled (repeat x3)\nbench: output accepted\n")
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	for i := range 5 {
		log.Logf(logger.Allow, "monitor", "frame %d complete", i)
	}
	log.Write(w)
	test.ExpectEquality(t, w.String(), "monitor: frame 3 complete\nmonitor: frame 4 complete\n")

	// WriteRecent() must cope with entries being trimmed
	w.Reset()
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "monitor: frame 3 complete\nmonitor: frame 4 complete\n")
	log.Logf(logger.Allow, "monitor", "frame %d complete", 5)
	log.Logf(logger.Allow, "monitor", "frame %d complete", 6)
	log.Logf(logger.Allow, "monitor", "frame %d complete", 7)
	w.Reset()
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "monitor: frame 6 complete\nmonitor: frame 7 complete\n")
}

func TestWriteRecent(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "sink", "ready")
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "sink: ready\n")

	w.Reset()
	log.Log(logger.Allow, "sink", "not ready")
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "sink: not ready\n")

	w.Reset()
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "")
}

// permits logging on every nth cycle only
type everyNth struct {
	cycle *int
	n     int
}

func (p everyNth) AllowLogging() bool {
	return *p.cycle%p.n == 0
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	var cycle int
	p := everyNth{cycle: &cycle, n: 4}

	for c := range 10 {
		cycle = c
		log.Logf(p, "bench", "cycle %d", cycle)
	}
	log.Write(w)
	test.ExpectEquality(t, w.String(), "bench: cycle 0\nbench: cycle 4\nbench: cycle 8\n")

	log.Clear()
	w.Reset()
	log.Log(logger.Deny, "bench", "never logged")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

// error and Stringer details use their own string representation
type position struct {
	row, col int
}

func (p position) String() string {
	return fmt.Sprintf("row %d col %d", p.row, p.col)
}

func TestDetailTypes(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("stability violation")
	log.Log(logger.Allow, "checker", err)
	log.Logf(logger.Allow, "checker", "fatal: %v", err)
	log.Log(logger.Allow, "monitor", position{row: 2, col: 3})
	log.Log(logger.Allow, "monitor", 640)
	log.Log(logger.Allow, "monitor", "line one\nline two")
	log.Write(w)

	test.ExpectEquality(t, w.String(), "checker: stability violation\n"+
		"checker: fatal: stability violation\n"+
		"monitor: row 2 col 3\n"+
		"monitor: 640\n"+
		"monitor: line oneline two\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.Writer{}

	log.SetEcho(w)
	log.Log(logger.Allow, "tpg", "enabled")
	test.ExpectSuccess(t, w.Compare("tpg: enabled\n"))

	log.SetEcho(nil)
	log.Log(logger.Allow, "tpg", "disabled")
	test.ExpectSuccess(t, w.Compare("tpg: enabled\n"))
}

func TestColorizer(t *testing.T) {
	w := &test.Writer{}
	c := logger.NewColorizer(w)

	n, err := c.Write([]byte("aggregator: streaming\n"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, len("aggregator: streaming\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "aggregator"))
	test.ExpectSuccess(t, strings.HasSuffix(w.String(), ": streaming\n"))

	// lines without a tag are passed through unchanged
	w.Clear()
	_, err = c.Write([]byte("no tag\n"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("no tag\n"))
}
