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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It adds the concept of modes, each with its own set of flags. For
// example:
//
//	axisim AGGREGATE -width 320 -height 240
//	axisim REGRESS LIST
//
// A Modes instance is given the arguments with NewArgs(). Flags and sub-modes
// for the top level are added and Parse() is called:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("TPG", "AGGREGATE", "REGRESS")
//	statsview := md.AddBool("statsview", false, "run stats server")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		fmt.Println(err)
//		return
//	}
//
// The selected sub-mode is returned by Mode(). If no sub-mode is named on the
// command line then the first sub-mode is selected. Processing of the
// remaining arguments starts with a call to NewMode(), after which the flags
// and sub-modes of the selected mode are added and Parse() is called again.
//
// The chain of selected modes is returned by Path(). For the second example
// above this would be "REGRESS/LIST".
//
// Help is printed to the Output writer when the -help flag is seen. The help
// includes the flags and the available sub-modes of the current mode.
package modalflag
