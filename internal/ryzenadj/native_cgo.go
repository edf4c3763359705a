// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

//go:build cgo && ryzenadj

package ryzenadj

/*
#cgo LDFLAGS: -lryzenadj
#include <stddef.h>
#include <stdint.h>
#include <ryzenadj.h>

_Static_assert(ADJ_ERR_FAM_UNSUPPORTED == -1, "ADJ_ERR_FAM_UNSUPPORTED changed");
_Static_assert(ADJ_ERR_SMU_TIMEOUT == -2, "ADJ_ERR_SMU_TIMEOUT changed");
_Static_assert(ADJ_ERR_SMU_UNSUPPORTED == -3, "ADJ_ERR_SMU_UNSUPPORTED changed");
_Static_assert(ADJ_ERR_SMU_REJECTED == -4, "ADJ_ERR_SMU_REJECTED changed");
_Static_assert(ADJ_ERR_MEMORY_ACCESS == -5, "ADJ_ERR_MEMORY_ACCESS changed");

// Family ordinals in family.go mirror enum ryzen_family
_Static_assert(FAM_UNKNOWN == -1, "enum ryzen_family changed");
_Static_assert(FAM_RAVEN == 0, "enum ryzen_family changed");
_Static_assert(FAM_PICASSO == 1, "enum ryzen_family changed");
_Static_assert(FAM_RENOIR == 2, "enum ryzen_family changed");
_Static_assert(FAM_CEZANNE == 3, "enum ryzen_family changed");
_Static_assert(FAM_DALI == 4, "enum ryzen_family changed");
_Static_assert(FAM_LUCIENNE == 5, "enum ryzen_family changed");
_Static_assert(FAM_VANGOGH == 6, "enum ryzen_family changed");
_Static_assert(FAM_REMBRANDT == 7, "enum ryzen_family changed");
_Static_assert(FAM_MENDOCINO == 8, "enum ryzen_family changed");
_Static_assert(FAM_PHOENIX == 9, "enum ryzen_family changed");
_Static_assert(FAM_HAWKPOINT == 10, "enum ryzen_family changed");
_Static_assert(FAM_DRAGONRANGE == 11, "enum ryzen_family changed");
_Static_assert(FAM_KRACKANPOINT == 12, "enum ryzen_family changed");
_Static_assert(FAM_STRIXHALO == 13, "enum ryzen_family changed");
*/
import "C"

import "unsafe"

type cgoLib struct{}

func defaultLibrary() nativeLib {
	return cgoLib{}
}

func (cgoLib) Name() string {
	return "libryzenadj"
}

func (cgoLib) Init() nativeAccess {
	ry := C.init_ryzenadj()
	if ry == nil {
		return nil
	}
	return &cgoAccess{ry: ry}
}

func (cgoLib) Cleanup(a nativeAccess) {
	ca, ok := a.(*cgoAccess)
	if !ok || ca.ry == nil {
		return
	}
	C.cleanup_ryzenadj(ca.ry)
	ca.ry = nil
}

func (cgoLib) Version() Version {
	return Version{
		Major:    int(C.RYZENADJ_MAJOR_VER),
		Minor:    int(C.RYZENADJ_MINIOR_VER),
		Revision: int(C.RYZENADJ_REVISION_VER),
	}
}

// cgoAccess wraps a ryzen_access handle. Register dispatch lives in
// zz_generated_native.go.
type cgoAccess struct {
	ry C.ryzen_access
}

func (a *cgoAccess) InitTable() int {
	return int(C.init_table(a.ry))
}

func (a *cgoAccess) RefreshTable() int {
	return int(C.refresh_table(a.ry))
}

func (a *cgoAccess) TableVersion() uint32 {
	return uint32(C.get_table_ver(a.ry))
}

func (a *cgoAccess) TableSize() int {
	return int(C.get_table_size(a.ry))
}

func (a *cgoAccess) TableValues() *float32 {
	return (*float32)(unsafe.Pointer(C.get_table_values(a.ry)))
}

func (a *cgoAccess) BIOSInterfaceVersion() int {
	return int(C.get_bios_if_ver(a.ry))
}

func (a *cgoAccess) CPUFamily() int {
	return int(C.get_cpu_family(a.ry))
}
