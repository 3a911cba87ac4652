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

package axis

import (
	"fmt"
	"strings"
)

// Pixel is the data word carried by a channel. Only the number of bits
// specified by the data width of the stream are significant.
type Pixel uint32

// Transaction is the producer side of a channel for a single cycle.
type Transaction struct {
	Data Pixel

	// end-of-row marker
	Last bool

	// start-of-frame marker
	User bool
}

func (tr Transaction) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%08x", uint32(tr.Data)))
	if tr.User {
		s.WriteString(" USER")
	}
	if tr.Last {
		s.WriteString(" LAST")
	}
	return s.String()
}

// Channel is a unidirectional, flow controlled link between a producer and a
// consumer. The fields represent the signals of the link for the current
// cycle.
//
// Each field has exactly one writer. The producer writes Valid and the
// Transaction. The consumer writes Ready.
type Channel struct {
	Transaction
	Valid bool
	Ready bool
}

func (ch *Channel) String() string {
	s := strings.Builder{}
	if ch.Valid {
		s.WriteString("VALID ")
		s.WriteString(ch.Transaction.String())
	} else {
		s.WriteString("-")
	}
	if ch.Ready {
		s.WriteString(" READY")
	}
	return s.String()
}

// Accepted returns true if a transaction is committed this cycle. Only accepted
// transactions advance the logical position of the stream.
func (ch *Channel) Accepted() bool {
	return ch.Valid && ch.Ready
}

// Stalled returns true if a transaction is being offered but not accepted.
func (ch *Channel) Stalled() bool {
	return ch.Valid && !ch.Ready
}

// Offer places the transaction on the channel and asserts Valid.
func (ch *Channel) Offer(tr Transaction) {
	ch.Transaction = tr
	ch.Valid = true
}

// Idle deasserts Valid. The transaction fields are zeroed so that stale data
// is never visible on the channel.
func (ch *Channel) Idle() {
	ch.Transaction = Transaction{}
	ch.Valid = false
}
