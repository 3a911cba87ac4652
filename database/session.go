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

package database

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/axisim/curated"
)

// Activity is used to specify the type of activity that will be performed
// during the database session.
type Activity int

// List of valid Activity values. The order of values is important. An
// activity higher in the list permits the activities lower in the list.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Sentinal errors.
const (
	NotAvailable = "database: file not available (%s)"
	DatabaseErr  = "database: %v"
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries map[int]Entry

	// deserialisers for the different entry types
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new DB session. The init argument is the
// function to call when the database has been successfully opened. This
// function should be used to add information about the different entries
// that are to be used in the database (see AddEntryType() function).
//
// The database file is not created unless the activity is ActivityCreating.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	var err error

	db := &Session{
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	var flags int
	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityModifying:
		flags = os.O_RDWR
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	}

	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NotAvailable, path)
		}
		return nil, curated.Errorf(DatabaseErr, err)
	}

	// closing of db.dbfile requires a call to EndSession()

	if init != nil {
		if err := init(db); err != nil {
			db.dbfile.Close()
			return nil, curated.Errorf(DatabaseErr, err)
		}
	}

	if err := db.readDBFile(); err != nil {
		db.dbfile.Close()
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. Changes are written to disk only if the
// commitChanges argument is true and the session activity allows it.
func (db *Session) EndSession(commitChanges bool) error {
	if db.dbfile == nil {
		return nil
	}

	if commitChanges && db.activity != ActivityReading {
		if err := db.write(db.dbfile); err != nil {
			return curated.Errorf(DatabaseErr, err)
		}
	}

	err := db.dbfile.Close()
	db.dbfile = nil
	if err != nil {
		return curated.Errorf(DatabaseErr, err)
	}

	return nil
}

func (db *Session) write(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return err
		}

		s := strings.Builder{}
		s.WriteString(recordHeader(key, ent.ID()))
		for i := range ser {
			s.WriteString(fieldSep)
			s.WriteString(ser[i])
		}
		s.WriteString(entrySep)

		if _, err := f.WriteString(s.String()); err != nil {
			return err
		}
	}

	return nil
}

func (db *Session) readDBFile() error {
	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return curated.Errorf(DatabaseErr, err)
	}

	lines := strings.Split(string(buffer), entrySep)

	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
		if len(lines[i]) == 0 {
			continue
		}

		fields := strings.Split(lines[i], fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf(DatabaseErr, fmt.Sprintf("malformed entry at line %d", i+1))
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf(DatabaseErr, fmt.Sprintf("invalid key (%s) at line %d", fields[leaderFieldKey], i+1))
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(DatabaseErr, fmt.Sprintf("duplicate key (%v) at line %d", key, i+1))
		}

		deserialise, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf(DatabaseErr, fmt.Sprintf("unrecognised entry type (%s) at line %d", fields[leaderFieldID], i+1))
		}

		ent, err := deserialise(fields[numLeaderFields:])
		if err != nil {
			return curated.Errorf(DatabaseErr, fmt.Sprintf("%v at line %d", err, i+1))
		}

		db.entries[key] = ent
	}

	return nil
}

// arbitrary maximum number of entries.
const maxEntries = 1000

const fieldSep = ","
const entrySep = "\n"

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

func recordHeader(key int, id string) string {
	return fmt.Sprintf("%03d%s%s", key, fieldSep, id)
}

// NumEntries returns the number of entries in the database.
func (db Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		if _, err := output.Write([]byte("database is empty\n")); err != nil {
			return err
		}
		return nil
	}

	for _, key := range db.SortedKeyList() {
		if _, err := fmt.Fprintf(output, "%03d %s\n", key, db.entries[key]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries()); err != nil {
		return err
	}

	return nil
}

// Add an entry to the db. Returns the key of the new entry.
func (db *Session) Add(ent Entry) (int, error) {
	if db.activity == ActivityReading {
		return -1, curated.Errorf(DatabaseErr, "cannot add entry to a read-only session")
	}

	var key int

	// find spare key
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return -1, curated.Errorf(DatabaseErr, fmt.Sprintf("maximum entries exceeded (max %d)", maxEntries))
	}

	db.entries[key] = ent

	return key, nil
}

// Get returns the entry with the specified key.
func (db Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf(DatabaseErr, fmt.Sprintf("key not available (%d)", key))
	}
	return ent, nil
}

// Delete deletes an entry with the specified key.
func (db *Session) Delete(key int) error {
	if db.activity == ActivityReading {
		return curated.Errorf(DatabaseErr, "cannot delete entry from a read-only session")
	}

	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf(DatabaseErr, fmt.Sprintf("key not available (%d)", key))
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf(DatabaseErr, err)
	}

	delete(db.entries, key)

	return nil
}
