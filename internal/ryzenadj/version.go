// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import "fmt"

// Version identifies the native library build the wrapper is linked against.
type Version struct {
	Major    int
	Minor    int
	Revision int
}

func (v Version) String() string {
	return fmt.Sprintf("RyzenAdj v%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// LibraryVersion returns the version of the linked native library. It needs no session.
func LibraryVersion() Version {
	return defaultLibrary().Version()
}
