// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

// nativeLib abstracts libryzenadj process-level entry points so the session
// lifecycle can be exercised against a mock.
type nativeLib interface {
	Name() string
	// Init returns nil when the library could not produce a valid handle.
	Init() nativeAccess
	Cleanup(a nativeAccess)
	Version() Version
}

// nativeAccess is one libryzenadj handle (ryzen_access). Status-returning calls
// use the raw native codes; interpretation is left to the session.
type nativeAccess interface {
	InitTable() int
	RefreshTable() int
	TableVersion() uint32
	// TableSize is the PM table size in bytes.
	TableSize() int
	// TableValues points at the first float of the live PM table buffer.
	TableValues() *float32
	BIOSInterfaceVersion() int
	CPUFamily() int

	Get(g Getter) float32
	GetCore(g CoreGetter, core uint32) float32
	Set(s Setter, value uint32) int
	Control(c Control) int
}
