// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import (
	"math/rand/v2"
)

const (
	fakeTableVersion = 0x00450005
	fakeBIOSIFVer    = 13
)

// limit register and the register that reports the live value against it
var fakeTracks = [][2]Getter{
	{StapmLimit, StapmValue},
	{FastLimit, FastValue},
	{SlowLimit, SlowValue},
	{TctlTemp, TctlTempValue},
	{VRMCurrent, VRMCurrentValue},
	{VRMSoCCurrent, VRMSoCCurrentValue},
	{VRMMaxCurrent, VRMMaxCurrentValue},
	{VRMSoCMaxCurrent, VRMSoCMaxCurrentValue},
	{APUSkinTempLimit, APUSkinTempValue},
	{DGPUSkinTempLimit, DGPUSkinTempValue},
	{APUSlowLimit, APUSlowValue},
}

var fakeDefaults = map[Getter]float32{
	StapmLimit:        25,
	FastLimit:         35,
	SlowLimit:         30,
	SlowTime:          5,
	StapmTime:         200,
	TctlTemp:          95,
	VRMCurrent:        60,
	VRMSoCCurrent:     15,
	VRMMaxCurrent:     90,
	VRMSoCMaxCurrent:  20,
	PSI0Current:       20,
	PSI0SoCCurrent:    10,
	CCLKSetpoint:      0.8,
	APUSkinTempLimit:  50,
	DGPUSkinTempLimit: 50,
	APUSlowLimit:      25,
	GFXClock:          1600,
	GFXVolt:           0.9,
	L3Clock:           4200,
	MemClock:          3200,
	FClock:            1600,
	SoCVolt:           1.0,
}

// FakeOptionFn configures the simulated SMU
type FakeOptionFn func(*fakeLib)

// WithFakeCores sets the number of cores the simulated SMU reports.
func WithFakeCores(n int) FakeOptionFn {
	return func(f *fakeLib) {
		if n > 0 {
			f.cores = n
		}
	}
}

// WithFakeFamily sets the reported CPU family.
func WithFakeFamily(family Family) FakeOptionFn {
	return func(f *fakeLib) {
		f.family = family
	}
}

// WithFakeSeed makes the simulated readings reproducible.
func WithFakeSeed(seed uint64) FakeOptionFn {
	return func(f *fakeLib) {
		f.seed = seed
	}
}

type fakeLib struct {
	cores  int
	family Family
	seed   uint64
}

func newFakeLib(opts ...FakeOptionFn) *fakeLib {
	f := &fakeLib{
		cores:  8,
		family: FamilyRembrandt,
		seed:   rand.Uint64(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *fakeLib) Name() string {
	return "fake-smu"
}

func (f *fakeLib) Init() nativeAccess {
	a := &fakeAccess{
		rng:    rand.New(rand.NewPCG(f.seed, f.seed>>1)),
		cores:  f.cores,
		family: f.family,
		load:   0.7,
	}
	for g, v := range fakeDefaults {
		a.regs[g] = v
	}
	for i := range a.core {
		a.core[i] = make([]float32, f.cores)
	}
	return a
}

func (f *fakeLib) Cleanup(a nativeAccess) {
	if fa, ok := a.(*fakeAccess); ok {
		fa.table = nil
	}
}

func (f *fakeLib) Version() Version {
	return Version{Major: 0, Minor: 16, Revision: 0}
}

// fakeAccess simulates the registers of a mobile APU. Writes to a limit are
// reflected by the matching getter; live values move around the limits on
// every refresh.
type fakeAccess struct {
	rng       *rand.Rand
	cores     int
	family    Family
	load      float32
	ocEnabled bool

	regs  [getterCount]float32
	core  [coreGetterCount][]float32
	table []float32
}

func (a *fakeAccess) InitTable() int {
	a.table = make([]float32, int(getterCount)+int(coreGetterCount)*a.cores)
	a.sample()
	return 0
}

func (a *fakeAccess) RefreshTable() int {
	if a.table == nil {
		return codeMemoryAccess
	}
	a.sample()
	return 0
}

func (a *fakeAccess) sample() {
	jitter := func() float32 { return 1 + (a.rng.Float32()-0.5)*0.1 }

	for _, t := range fakeTracks {
		a.regs[t[1]] = a.regs[t[0]] * a.load * jitter()
	}
	a.regs[CCLKBusyValue] = 100 * a.load * jitter()
	a.regs[GFXTemp] = a.regs[TctlTempValue] * 0.9
	a.regs[L3Temp] = a.regs[TctlTempValue] * 0.95
	a.regs[L3Logic] = 0.5 * jitter()
	a.regs[L3VDDM] = 0.2 * jitter()
	a.regs[SocketPower] = a.regs[FastValue]
	a.regs[SoCPower] = a.regs[SocketPower] * 0.2

	for i := 0; i < a.cores; i++ {
		a.core[CoreClock][i] = 4.5 * a.load * jitter()
		a.core[CoreVolt][i] = 1.1 * jitter()
		a.core[CorePower][i] = a.regs[SocketPower] * 0.8 / float32(a.cores)
		a.core[CoreTemp][i] = a.regs[TctlTempValue] * jitter()
	}

	n := copy(a.table, a.regs[:])
	for _, values := range a.core {
		n += copy(a.table[n:], values)
	}
}

func (a *fakeAccess) TableVersion() uint32 {
	return fakeTableVersion
}

func (a *fakeAccess) TableSize() int {
	return len(a.table) * 4
}

func (a *fakeAccess) TableValues() *float32 {
	if len(a.table) == 0 {
		return nil
	}
	return &a.table[0]
}

func (a *fakeAccess) BIOSInterfaceVersion() int {
	return fakeBIOSIFVer
}

func (a *fakeAccess) CPUFamily() int {
	return int(a.family)
}

func (a *fakeAccess) Get(g Getter) float32 {
	return a.regs[g]
}

func (a *fakeAccess) GetCore(g CoreGetter, core uint32) float32 {
	if core >= uint32(a.cores) {
		return 0
	}
	return a.core[g][core]
}

func (a *fakeAccess) Set(s Setter, value uint32) int {
	switch s {
	case SetOCClock, SetPerCoreOCClock, SetOCVolt:
		if !a.ocEnabled {
			return codeSMURejected
		}
	}

	info := s.Info()
	g, err := ParseGetter(info.Native)
	if err != nil {
		// write-only register
		return 0
	}
	v := float32(value)
	if info.Unit == UnitMilliwatt || info.Unit == UnitMilliampere {
		v /= 1000
	}
	a.regs[g] = v
	return 0
}

func (a *fakeAccess) Control(c Control) int {
	switch c {
	case EnableOC:
		a.ocEnabled = true
	case DisableOC:
		a.ocEnabled = false
	case PowerSaving:
		a.load = 0.5
	case MaxPerformance:
		a.load = 0.95
	}
	return 0
}
