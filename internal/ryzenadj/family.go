// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import "fmt"

// Family is the processor family reported by get_cpu_family.
type Family int

const (
	FamilyUnknown Family = -1

	FamilyRaven Family = iota - 1
	FamilyPicasso
	FamilyRenoir
	FamilyCezanne
	FamilyDali
	FamilyLucienne
	FamilyVangogh
	FamilyRembrandt
	FamilyMendocino
	FamilyPhoenix
	FamilyHawkPoint
	FamilyDragonRange
	FamilyKrackanPoint
	FamilyStrixHalo

	familyEnd
)

var familyNames = [...]string{
	"Raven",
	"Picasso",
	"Renoir",
	"Cezanne",
	"Dali",
	"Lucienne",
	"Vangogh",
	"Rembrandt",
	"Mendocino",
	"Phoenix",
	"HawkPoint",
	"DragonRange",
	"KrackanPoint",
	"StrixHalo",
}

func (f Family) String() string {
	if f < FamilyRaven || f >= familyEnd {
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
	return familyNames[f]
}

// familyFromCode maps a native family code, failing with UnknownCPUFamily for
// codes outside the known range.
func familyFromCode(code int) (Family, error) {
	f := Family(code)
	if f < FamilyRaven || f >= familyEnd {
		return FamilyUnknown, &Error{Kind: KindUnknownCPUFamily, Code: code}
	}
	return f, nil
}
