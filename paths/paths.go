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

package paths

import (
	"path/filepath"
)

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with OS/build specific paths.
//
// The pth argument should not include the name of the resource. The
// subdirectory is created if necessary. The file argument may be the empty
// string, in which case the path of the subdirectory is returned.
func ResourcePath(pth string, file string) (string, error) {
	base, err := getBasePath(pth)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, file), nil
}
