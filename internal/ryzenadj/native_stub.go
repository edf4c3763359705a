// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(cgo && ryzenadj)

package ryzenadj

// unlinkedLib stands in when the binary is built without the ryzenadj tag.
// Opening a session against it fails with ErrInitializationFailed.
type unlinkedLib struct{}

func defaultLibrary() nativeLib {
	return unlinkedLib{}
}

func (unlinkedLib) Name() string {
	return "libryzenadj (not linked)"
}

func (unlinkedLib) Init() nativeAccess {
	return nil
}

func (unlinkedLib) Cleanup(nativeAccess) {}

func (unlinkedLib) Version() Version {
	return Version{}
}
