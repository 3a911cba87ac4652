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

package main_test

import (
	"testing"

	"github.com/jetsetilly/axisim/hardware"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/setup"
)

func BenchmarkTPG(b *testing.B) {
	bench, err := setup.NewTPGBench(setup.DefaultTPG, logger.Deny)
	if err != nil {
		b.Fatalf("error preparing bench: %v", err)
	}

	for b.Loop() {
		if err := bench.Step(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAggregator(b *testing.B) {
	bench, err := setup.NewAggregatorBench(setup.DefaultAggregate, logger.Deny)
	if err != nil {
		b.Fatalf("error preparing bench: %v", err)
	}

	for b.Loop() {
		if err := hardware.RunForCycles(bench, 1); err != nil {
			b.Fatal(err)
		}
	}
}
