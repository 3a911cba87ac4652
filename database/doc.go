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

// Package database is a very simple way of storing structured and arbitrary
// entries in a text file. Each line of the file is one entry. The first two
// fields of every line are the key of the entry and the ID of the entry type.
// The remaining fields are produced by the entry's Serialise() function.
//
// A session is started with StartSession() and must be ended with
// EndSession(). The init function passed to StartSession() registers the
// entry types that can be found in the database with AddEntryType():
//
//	db, err := database.StartSession(path, database.ActivityModifying, func(db *database.Session) error {
//		return db.AddEntryType("example", deserialiseExample)
//	})
//	if err != nil {
//		return err
//	}
//	defer db.EndSession(true)
//
// Changes made during a session are only written to disk by EndSession() if
// the commitChanges argument is true.
package database
