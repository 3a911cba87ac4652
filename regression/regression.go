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
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/database"
	"github.com/jetsetilly/axisim/paths"
)

// Sentinal error patterns.
const (
	RegressionError = "regression: %v"
	InvalidKey      = "regression: invalid key (%s)"
)

const regressionDBFile = "regressionDB"

// Regressor is the generic entry type in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag is true when the entry is being added to the database. in that
	// case the result of the run is stored in the entry
	//
	// returns success and a short description of the failure when the test
	// fails. an error is returned if the test could not be run
	regress(newRegression bool) (bool, string, error)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	if err := db.AddEntryType(tpgEntryID, deserialiseTPGEntry); err != nil {
		return err
	}
	if err := db.AddEntryType(aggregateEntryID, deserialiseAggregateEntry); err != nil {
		return err
	}
	return nil
}

func startSession(activity database.Activity) (*database.Session, error) {
	dbPth, err := paths.ResourcePath("", regressionDBFile)
	if err != nil {
		return nil, curated.Errorf(RegressionError, err)
	}

	db, err := database.StartSession(dbPth, activity, initDBSession)
	if err != nil {
		return nil, curated.Errorf(RegressionError, err)
	}

	return db, nil
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	if output == nil {
		return curated.Errorf(RegressionError, "io.Writer should not be nil (use a nopWriter)")
	}

	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd runs the regression for the first time and adds the result to
// the database.
func RegressAdd(output io.Writer, reg Regressor) error {
	if output == nil {
		return curated.Errorf(RegressionError, "io.Writer should not be nil (use a nopWriter)")
	}

	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	fmt.Fprintf(output, "adding: %s\n", reg)

	ok, msg, err := reg.regress(true)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}
	if !ok {
		return curated.Errorf(RegressionError, msg)
	}

	key, err := db.Add(reg)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}

	fmt.Fprintf(output, "added: %03d %s\n", key, reg)

	return nil
}

// RegressDelete removes an entry from the database. The user is asked to
// confirm the deletion with the confirmation reader.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	if output == nil {
		return curated.Errorf(RegressionError, "io.Writer should not be nil (use a nopWriter)")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(InvalidKey, key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && err != io.EOF {
		return curated.Errorf(RegressionError, err)
	}

	if n > 0 && (confirm[0] == 'y' || confirm[0] == 'Y') {
		if err := db.Delete(v); err != nil {
			return curated.Errorf(RegressionError, err)
		}
		fmt.Fprintf(output, "deleted test #%s from regression database\n", key)
	}

	return nil
}

// Results of RegressRun().
type Results struct {
	Succeed int
	Fail    int
	Error   int
}

func (r Results) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("regression tests: %d succeed, %d fail", r.Succeed, r.Fail))
	if r.Error > 0 {
		s.WriteString(fmt.Sprintf(" [%d with errors]", r.Error))
	}
	return s.String()
}

// RegressRun runs the tests in the regression database. The filterKeys
// argument specifies which entries to test. An empty list means that every
// entry should be tested.
func RegressRun(output io.Writer, verbose bool, filterKeys []string) (Results, error) {
	var res Results

	if output == nil {
		return res, curated.Errorf(RegressionError, "io.Writer should not be nil (use a nopWriter)")
	}

	keys := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return res, curated.Errorf(InvalidKey, k)
		}
		keys = append(keys, v)
	}

	db, err := startSession(database.ActivityReading)
	if err != nil {
		return res, err
	}
	defer db.EndSession(false)

	if db.NumEntries() == 0 {
		fmt.Fprintln(output, "database is empty")
		return res, nil
	}

	onSelect := func(key int, ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf(RegressionError, "database entry does not satisfy Regressor interface")
		}

		ok, msg, err := reg.regress(false)
		switch {
		case err != nil:
			res.Error++
			fmt.Fprintf(output, "  ERROR: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "         %v\n", err)
			}
		case !ok:
			res.Fail++
			fmt.Fprintf(output, "failure: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "         %s\n", msg)
			}
		default:
			res.Succeed++
			fmt.Fprintf(output, "succeed: %03d %s\n", key, reg)
		}

		return nil
	}

	if _, err := db.SelectKeys(onSelect, keys...); err != nil {
		return res, curated.Errorf(RegressionError, err)
	}

	fmt.Fprintln(output, res)

	return res, nil
}
