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

package regression

import (
	"fmt"
	"strconv"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/database"
	"github.com/jetsetilly/axisim/govern"
	"github.com/jetsetilly/axisim/hardware"
	"github.com/jetsetilly/axisim/hardware/aggregator"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/setup"
	"github.com/jetsetilly/axisim/testbench"
)

const tpgEntryID = "tpg"

const (
	tpgFieldWidth int = iota
	tpgFieldHeight
	tpgFieldDataWidth
	tpgFieldPattern
	tpgFieldBars
	tpgFieldBarPolicy
	tpgFieldBackpressure
	tpgFieldProbability
	tpgFieldSeed
	tpgFieldNumFrames
	tpgFieldDigest
	numTPGFields
)

// TPGRegression runs the TPG bench for a number of frames and compares the
// video digest with the stored value.
type TPGRegression struct {
	setup.TPG
	NumFrames int
	digest    string
}

// NewTPGRegression is the preferred method of initialisation for the
// TPGRegression type.
func NewTPGRegression(cfg setup.TPG, numFrames int) *TPGRegression {
	return &TPGRegression{
		TPG:       cfg,
		NumFrames: numFrames,
	}
}

func deserialiseTPGEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numTPGFields {
		return nil, fmt.Errorf("tpg entry: wrong number of fields (%d)", len(fields))
	}

	reg := &TPGRegression{}

	var err error
	ints := []struct {
		field int
		v     *int
	}{
		{tpgFieldWidth, &reg.Width},
		{tpgFieldHeight, &reg.Height},
		{tpgFieldDataWidth, &reg.DataWidth},
		{tpgFieldBars, &reg.Bars},
		{tpgFieldNumFrames, &reg.NumFrames},
	}
	for _, i := range ints {
		*i.v, err = strconv.Atoi(fields[i.field])
		if err != nil {
			return nil, fmt.Errorf("tpg entry: invalid field (%s)", fields[i.field])
		}
	}

	reg.Pattern, err = pattern.KindFromString(fields[tpgFieldPattern])
	if err != nil {
		return nil, err
	}

	reg.BarPolicy, err = pattern.BarPolicyFromString(fields[tpgFieldBarPolicy])
	if err != nil {
		return nil, err
	}

	reg.Mode, err = testbench.BackpressureFromString(fields[tpgFieldBackpressure])
	if err != nil {
		return nil, err
	}

	reg.Probability, err = strconv.ParseFloat(fields[tpgFieldProbability], 64)
	if err != nil {
		return nil, fmt.Errorf("tpg entry: invalid probability (%s)", fields[tpgFieldProbability])
	}

	reg.Seed, err = strconv.ParseInt(fields[tpgFieldSeed], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("tpg entry: invalid seed (%s)", fields[tpgFieldSeed])
	}

	reg.Solid = pattern.Palette[0]
	reg.digest = fields[tpgFieldDigest]

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg TPGRegression) ID() string {
	return tpgEntryID
}

// Serialise implements the database.Entry interface.
func (reg *TPGRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		strconv.Itoa(reg.Width),
		strconv.Itoa(reg.Height),
		strconv.Itoa(reg.DataWidth),
		reg.Pattern.String(),
		strconv.Itoa(reg.Bars),
		reg.BarPolicy.String(),
		reg.Mode.String(),
		strconv.FormatFloat(reg.Probability, 'f', -1, 64),
		strconv.FormatInt(reg.Seed, 10),
		strconv.Itoa(reg.NumFrames),
		reg.digest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg TPGRegression) CleanUp() error {
	return nil
}

func (reg TPGRegression) String() string {
	return fmt.Sprintf("[%s] %s frames=%d", reg.ID(), reg.TPG, reg.NumFrames)
}

// regress implements the Regressor interface.
func (reg *TPGRegression) regress(newRegression bool) (bool, string, error) {
	if reg.Seed == 0 && reg.Pattern == pattern.Random {
		return false, "", fmt.Errorf("random pattern requires a non-zero seed")
	}
	if reg.Seed == 0 && reg.Mode != testbench.NoBackpressure && reg.Mode != testbench.EveryOtherBackpressure {
		return false, "", fmt.Errorf("random backpressure requires a non-zero seed")
	}

	b, err := setup.NewTPGBench(reg.TPG, logger.Deny)
	if err != nil {
		return false, "", err
	}

	if err := hardware.RunForFrameCount(b, reg.NumFrames, nil); err != nil {
		return false, "", err
	}

	if newRegression {
		reg.digest = b.Digest.Hash()
		return true, "", nil
	}

	if b.Digest.Hash() != reg.digest {
		return false, fmt.Sprintf("digest mismatch: %s", b.Digest.Hash()), nil
	}

	return true, "", nil
}

const aggregateEntryID = "aggregate"

const (
	aggFieldWidth int = iota
	aggFieldHeight
	aggFieldDataWidth
	aggFieldTiling
	aggFieldImages
	aggFieldSkew
	aggFieldResync
	aggFieldBackpressure
	aggFieldProbability
	aggFieldSeed
	aggFieldNumFrames
	aggFieldDigest
	numAggFields
)

// AggregateRegression runs the aggregator bench for a number of frames. The
// composite of every captured frame is verified and the video digest is
// compared with the stored value.
type AggregateRegression struct {
	setup.Aggregate
	NumFrames int
	digest    string
}

// NewAggregateRegression is the preferred method of initialisation for the
// AggregateRegression type.
func NewAggregateRegression(cfg setup.Aggregate, numFrames int) *AggregateRegression {
	return &AggregateRegression{
		Aggregate: cfg,
		NumFrames: numFrames,
	}
}

func deserialiseAggregateEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numAggFields {
		return nil, fmt.Errorf("aggregate entry: wrong number of fields (%d)", len(fields))
	}

	reg := &AggregateRegression{}

	var err error
	ints := []struct {
		field int
		v     *int
	}{
		{aggFieldWidth, &reg.Width},
		{aggFieldHeight, &reg.Height},
		{aggFieldDataWidth, &reg.DataWidth},
		{aggFieldSkew, &reg.Skew},
		{aggFieldNumFrames, &reg.NumFrames},
	}
	for _, i := range ints {
		*i.v, err = strconv.Atoi(fields[i.field])
		if err != nil {
			return nil, fmt.Errorf("aggregate entry: invalid field (%s)", fields[i.field])
		}
	}

	reg.Tiling, err = aggregator.TilingFromString(fields[aggFieldTiling])
	if err != nil {
		return nil, err
	}

	reg.Images, err = setup.ImagesFromString(fields[aggFieldImages])
	if err != nil {
		return nil, err
	}

	reg.Resync, err = strconv.ParseBool(fields[aggFieldResync])
	if err != nil {
		return nil, fmt.Errorf("aggregate entry: invalid resync (%s)", fields[aggFieldResync])
	}

	reg.Mode, err = testbench.BackpressureFromString(fields[aggFieldBackpressure])
	if err != nil {
		return nil, err
	}

	reg.Probability, err = strconv.ParseFloat(fields[aggFieldProbability], 64)
	if err != nil {
		return nil, fmt.Errorf("aggregate entry: invalid probability (%s)", fields[aggFieldProbability])
	}

	reg.Seed, err = strconv.ParseInt(fields[aggFieldSeed], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("aggregate entry: invalid seed (%s)", fields[aggFieldSeed])
	}

	reg.digest = fields[aggFieldDigest]

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg AggregateRegression) ID() string {
	return aggregateEntryID
}

// Serialise implements the database.Entry interface.
func (reg *AggregateRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		strconv.Itoa(reg.Width),
		strconv.Itoa(reg.Height),
		strconv.Itoa(reg.DataWidth),
		reg.Tiling.String(),
		reg.Images.String(),
		strconv.Itoa(reg.Skew),
		strconv.FormatBool(reg.Resync),
		reg.Mode.String(),
		strconv.FormatFloat(reg.Probability, 'f', -1, 64),
		strconv.FormatInt(reg.Seed, 10),
		strconv.Itoa(reg.NumFrames),
		reg.digest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg AggregateRegression) CleanUp() error {
	return nil
}

func (reg AggregateRegression) String() string {
	return fmt.Sprintf("[%s] %s frames=%d", reg.ID(), reg.Aggregate, reg.NumFrames)
}

// regress implements the Regressor interface.
func (reg *AggregateRegression) regress(newRegression bool) (bool, string, error) {
	if reg.Seed == 0 && reg.Images == setup.Mixed {
		return false, "", fmt.Errorf("mixed images require a non-zero seed")
	}
	if reg.Seed == 0 && reg.Mode != testbench.NoBackpressure && reg.Mode != testbench.EveryOtherBackpressure {
		return false, "", fmt.Errorf("random backpressure requires a non-zero seed")
	}

	b, err := setup.NewAggregatorBench(reg.Aggregate, logger.Deny)
	if err != nil {
		return false, "", err
	}

	var verified int
	err = hardware.RunForFrameCount(b, reg.NumFrames, func(frame int) (govern.State, error) {
		if frame > verified {
			verified = frame
			if f, ok := b.Capture.Last(); ok {
				if err := b.Verify(f); err != nil {
					return govern.Ending, err
				}
			}
		}
		return govern.Running, nil
	})
	if err != nil {
		if curated.Is(err, hardware.CompositeMismatch) {
			return false, err.Error(), nil
		}
		return false, "", err
	}

	if newRegression {
		reg.digest = b.Digest.Hash()
		return true, "", nil
	}

	if b.Digest.Hash() != reg.digest {
		return false, fmt.Sprintf("digest mismatch: %s", b.Digest.Hash()), nil
	}

	return true, "", nil
}
