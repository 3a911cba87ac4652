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

package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	penTag    = "\033[36m"
	penNormal = "\033[0m"
)

// Colorizer applies basic coloring rules to logging output. The tag of the
// entry is coloured and the detail is left as it is.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := string(p)

	tag, detail, ok := strings.Cut(s, ": ")
	if !ok {
		return c.out.Write(p)
	}

	m, err := io.WriteString(c.out, penTag+tag+penNormal+": "+detail)
	if err != nil {
		return m, err
	}

	// report the length of the uncoloured string so that callers counting
	// bytes aren't confused by the escape sequences
	return len(p), nil
}

// EchoWriter returns an io.Writer suitable for SetEcho(). Output is colorized
// only if the file is a terminal.
func EchoWriter(f *os.File) io.Writer {
	if term.IsTerminal(int(f.Fd())) {
		return NewColorizer(f)
	}
	return f
}
