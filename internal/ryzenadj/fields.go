// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import (
	"fmt"
	"strings"
)

//go:generate go run ../../hack/gen-accessors -out .

// Unit is the unit a register value is expressed in.
type Unit string

const (
	UnitNone        Unit = ""
	UnitWatt        Unit = "W"
	UnitMilliwatt   Unit = "mW"
	UnitAmpere      Unit = "A"
	UnitMilliampere Unit = "mA"
	UnitMegahertz   Unit = "MHz"
	UnitGigahertz   Unit = "GHz"
	UnitCelsius     Unit = "°C"
	UnitVolt        Unit = "V"
	UnitSecond      Unit = "s"
	UnitMillisecond Unit = "ms"
	UnitPercent     Unit = "%"
)

// Subsystem groups registers by what they measure or constrain.
type Subsystem string

const (
	SubsystemPower   Subsystem = "power"
	SubsystemCurrent Subsystem = "current"
	SubsystemClock   Subsystem = "clock"
	SubsystemThermal Subsystem = "thermal"
	SubsystemVoltage Subsystem = "voltage"
	SubsystemCore    Subsystem = "core"
	SubsystemProfile Subsystem = "profile"
)

// FieldInfo describes one register exposed by libryzenadj.
type FieldInfo struct {
	Name      string // Go identifier of the accessor
	Native    string // symbol suffix after get_ / set_
	Unit      Unit
	Subsystem Subsystem
	Help      string
}

// Key is the kebab-case register name used in configuration and metric names.
func (f FieldInfo) Key() string {
	return strings.ReplaceAll(f.Native, "_", "-")
}

// Getter identifies a read-only telemetry register.
type Getter int

const (
	StapmLimit Getter = iota
	StapmValue
	FastLimit
	FastValue
	SlowLimit
	SlowValue
	SlowTime
	StapmTime
	TctlTemp
	TctlTempValue
	VRMCurrent
	VRMCurrentValue
	VRMSoCCurrent
	VRMSoCCurrentValue
	VRMMaxCurrent
	VRMMaxCurrentValue
	VRMSoCMaxCurrent
	VRMSoCMaxCurrentValue
	PSI0Current
	PSI0SoCCurrent
	CCLKSetpoint
	CCLKBusyValue
	APUSkinTempLimit
	APUSkinTempValue
	DGPUSkinTempLimit
	DGPUSkinTempValue
	APUSlowLimit
	APUSlowValue
	GFXClock
	GFXTemp
	GFXVolt
	L3Clock
	L3Logic
	L3VDDM
	L3Temp
	MemClock
	FClock
	SoCPower
	SoCVolt
	SocketPower

	getterCount
)

// CoreGetter identifies a per-core telemetry register.
type CoreGetter int

const (
	CoreClock CoreGetter = iota
	CoreVolt
	CorePower
	CoreTemp

	coreGetterCount
)

// Setter identifies a writable limit. Values are passed to the SMU as is, in the
// setter's Unit.
type Setter int

const (
	SetStapmLimit Setter = iota
	SetFastLimit
	SetSlowLimit
	SetSlowTime
	SetStapmTime
	SetTctlTemp
	SetVRMCurrent
	SetVRMSoCCurrent
	SetVRMGFXCurrent
	SetVRMCVIPCurrent
	SetVRMMaxCurrent
	SetVRMGFXMaxCurrent
	SetVRMSoCMaxCurrent
	SetPSI0Current
	SetPSI3CPUCurrent
	SetPSI0SoCCurrent
	SetPSI3GFXCurrent
	SetMaxGFXClockFreq
	SetMinGFXClockFreq
	SetMaxSoCClockFreq
	SetMinSoCClockFreq
	SetMaxFClockFreq
	SetMinFClockFreq
	SetMaxVCN
	SetMinVCN
	SetMaxLCLK
	SetMinLCLK
	SetProchotDeassertionRamp
	SetAPUSkinTempLimit
	SetDGPUSkinTempLimit
	SetAPUSlowLimit
	SetSkinTempPowerLimit
	SetGFXClock
	SetOCClock
	SetPerCoreOCClock
	SetOCVolt
	SetCOAll
	SetCOPer
	SetCOGFX

	setterCount
)

// Control identifies a value-less SMU command.
type Control int

const (
	DisableOC Control = iota
	EnableOC
	PowerSaving
	MaxPerformance

	controlCount
)

// Field tables are indexed by the constants above and must stay in the same order.
var getterFields = [getterCount]FieldInfo{
	{"StapmLimit", "stapm_limit", UnitWatt, SubsystemPower, "Sustained power limit (STAPM)"},
	{"StapmValue", "stapm_value", UnitWatt, SubsystemPower, "Sustained power draw averaged over the STAPM window"},
	{"FastLimit", "fast_limit", UnitWatt, SubsystemPower, "Fast (PPT fast) package power limit"},
	{"FastValue", "fast_value", UnitWatt, SubsystemPower, "Fast (PPT fast) package power draw"},
	{"SlowLimit", "slow_limit", UnitWatt, SubsystemPower, "Slow (PPT slow) package power limit"},
	{"SlowValue", "slow_value", UnitWatt, SubsystemPower, "Slow (PPT slow) package power draw"},
	{"SlowTime", "slow_time", UnitSecond, SubsystemPower, "Slow PPT averaging window"},
	{"StapmTime", "stapm_time", UnitSecond, SubsystemPower, "STAPM averaging window"},
	{"TctlTemp", "tctl_temp", UnitCelsius, SubsystemThermal, "Tctl temperature limit"},
	{"TctlTempValue", "tctl_temp_value", UnitCelsius, SubsystemThermal, "Tctl temperature"},
	{"VRMCurrent", "vrm_current", UnitAmpere, SubsystemCurrent, "VDD TDC current limit"},
	{"VRMCurrentValue", "vrm_current_value", UnitAmpere, SubsystemCurrent, "VDD TDC current"},
	{"VRMSoCCurrent", "vrmsoc_current", UnitAmpere, SubsystemCurrent, "SoC TDC current limit"},
	{"VRMSoCCurrentValue", "vrmsoc_current_value", UnitAmpere, SubsystemCurrent, "SoC TDC current"},
	{"VRMMaxCurrent", "vrmmax_current", UnitAmpere, SubsystemCurrent, "VDD EDC current limit"},
	{"VRMMaxCurrentValue", "vrmmax_current_value", UnitAmpere, SubsystemCurrent, "VDD EDC current"},
	{"VRMSoCMaxCurrent", "vrmsocmax_current", UnitAmpere, SubsystemCurrent, "SoC EDC current limit"},
	{"VRMSoCMaxCurrentValue", "vrmsocmax_current_value", UnitAmpere, SubsystemCurrent, "SoC EDC current"},
	{"PSI0Current", "psi0_current", UnitAmpere, SubsystemCurrent, "VDD PSI0 current limit"},
	{"PSI0SoCCurrent", "psi0soc_current", UnitAmpere, SubsystemCurrent, "SoC PSI0 current limit"},
	{"CCLKSetpoint", "cclk_setpoint", UnitNone, SubsystemClock, "Core clock setpoint"},
	{"CCLKBusyValue", "cclk_busy_value", UnitPercent, SubsystemClock, "Core clock busy"},
	{"APUSkinTempLimit", "apu_skin_temp_limit", UnitCelsius, SubsystemThermal, "APU skin temperature limit"},
	{"APUSkinTempValue", "apu_skin_temp_value", UnitCelsius, SubsystemThermal, "APU skin temperature"},
	{"DGPUSkinTempLimit", "dgpu_skin_temp_limit", UnitCelsius, SubsystemThermal, "dGPU skin temperature limit"},
	{"DGPUSkinTempValue", "dgpu_skin_temp_value", UnitCelsius, SubsystemThermal, "dGPU skin temperature"},
	{"APUSlowLimit", "apu_slow_limit", UnitWatt, SubsystemPower, "APU slow PPT power limit"},
	{"APUSlowValue", "apu_slow_value", UnitWatt, SubsystemPower, "APU slow PPT power draw"},
	{"GFXClock", "gfx_clk", UnitMegahertz, SubsystemClock, "Graphics clock"},
	{"GFXTemp", "gfx_temp", UnitCelsius, SubsystemThermal, "Graphics temperature"},
	{"GFXVolt", "gfx_volt", UnitVolt, SubsystemVoltage, "Graphics voltage"},
	{"L3Clock", "l3_clk", UnitMegahertz, SubsystemClock, "L3 cache clock"},
	{"L3Logic", "l3_logic", UnitWatt, SubsystemPower, "L3 cache logic power"},
	{"L3VDDM", "l3_vddm", UnitWatt, SubsystemPower, "L3 cache VDDM power"},
	{"L3Temp", "l3_temp", UnitCelsius, SubsystemThermal, "L3 cache temperature"},
	{"MemClock", "mem_clk", UnitMegahertz, SubsystemClock, "Memory clock"},
	{"FClock", "fclk", UnitMegahertz, SubsystemClock, "Infinity fabric clock"},
	{"SoCPower", "soc_power", UnitWatt, SubsystemPower, "SoC power"},
	{"SoCVolt", "soc_volt", UnitVolt, SubsystemVoltage, "SoC voltage"},
	{"SocketPower", "socket_power", UnitWatt, SubsystemPower, "Socket power"},
}

var coreGetterFields = [coreGetterCount]FieldInfo{
	{"CoreClock", "core_clk", UnitGigahertz, SubsystemCore, "Core clock"},
	{"CoreVolt", "core_volt", UnitVolt, SubsystemCore, "Core voltage"},
	{"CorePower", "core_power", UnitWatt, SubsystemCore, "Core power"},
	{"CoreTemp", "core_temp", UnitCelsius, SubsystemCore, "Core temperature"},
}

var setterFields = [setterCount]FieldInfo{
	{"SetStapmLimit", "stapm_limit", UnitMilliwatt, SubsystemPower, "Sustained power limit (STAPM)"},
	{"SetFastLimit", "fast_limit", UnitMilliwatt, SubsystemPower, "Fast (PPT fast) package power limit"},
	{"SetSlowLimit", "slow_limit", UnitMilliwatt, SubsystemPower, "Slow (PPT slow) package power limit"},
	{"SetSlowTime", "slow_time", UnitSecond, SubsystemPower, "Slow PPT averaging window"},
	{"SetStapmTime", "stapm_time", UnitSecond, SubsystemPower, "STAPM averaging window"},
	{"SetTctlTemp", "tctl_temp", UnitCelsius, SubsystemThermal, "Tctl temperature limit"},
	{"SetVRMCurrent", "vrm_current", UnitMilliampere, SubsystemCurrent, "VDD TDC current limit"},
	{"SetVRMSoCCurrent", "vrmsoc_current", UnitMilliampere, SubsystemCurrent, "SoC TDC current limit"},
	{"SetVRMGFXCurrent", "vrmgfx_current", UnitMilliampere, SubsystemCurrent, "GFX TDC current limit"},
	{"SetVRMCVIPCurrent", "vrmcvip_current", UnitMilliampere, SubsystemCurrent, "CVIP TDC current limit"},
	{"SetVRMMaxCurrent", "vrmmax_current", UnitMilliampere, SubsystemCurrent, "VDD EDC current limit"},
	{"SetVRMGFXMaxCurrent", "vrmgfxmax_current", UnitMilliampere, SubsystemCurrent, "GFX EDC current limit"},
	{"SetVRMSoCMaxCurrent", "vrmsocmax_current", UnitMilliampere, SubsystemCurrent, "SoC EDC current limit"},
	{"SetPSI0Current", "psi0_current", UnitMilliampere, SubsystemCurrent, "VDD PSI0 current limit"},
	{"SetPSI3CPUCurrent", "psi3cpu_current", UnitMilliampere, SubsystemCurrent, "VDD PSI3 current limit"},
	{"SetPSI0SoCCurrent", "psi0soc_current", UnitMilliampere, SubsystemCurrent, "SoC PSI0 current limit"},
	{"SetPSI3GFXCurrent", "psi3gfx_current", UnitMilliampere, SubsystemCurrent, "GFX PSI3 current limit"},
	{"SetMaxGFXClockFreq", "max_gfxclk_freq", UnitMegahertz, SubsystemClock, "Maximum graphics clock"},
	{"SetMinGFXClockFreq", "min_gfxclk_freq", UnitMegahertz, SubsystemClock, "Minimum graphics clock"},
	{"SetMaxSoCClockFreq", "max_socclk_freq", UnitMegahertz, SubsystemClock, "Maximum SoC clock"},
	{"SetMinSoCClockFreq", "min_socclk_freq", UnitMegahertz, SubsystemClock, "Minimum SoC clock"},
	{"SetMaxFClockFreq", "max_fclk_freq", UnitMegahertz, SubsystemClock, "Maximum infinity fabric clock"},
	{"SetMinFClockFreq", "min_fclk_freq", UnitMegahertz, SubsystemClock, "Minimum infinity fabric clock"},
	{"SetMaxVCN", "max_vcn", UnitMegahertz, SubsystemClock, "Maximum video core next clock"},
	{"SetMinVCN", "min_vcn", UnitMegahertz, SubsystemClock, "Minimum video core next clock"},
	{"SetMaxLCLK", "max_lclk", UnitMegahertz, SubsystemClock, "Maximum data launch clock"},
	{"SetMinLCLK", "min_lclk", UnitMegahertz, SubsystemClock, "Minimum data launch clock"},
	{"SetProchotDeassertionRamp", "prochot_deassertion_ramp", UnitMillisecond, SubsystemThermal, "PROCHOT deassertion ramp time"},
	{"SetAPUSkinTempLimit", "apu_skin_temp_limit", UnitCelsius, SubsystemThermal, "APU skin temperature limit"},
	{"SetDGPUSkinTempLimit", "dgpu_skin_temp_limit", UnitCelsius, SubsystemThermal, "dGPU skin temperature limit"},
	{"SetAPUSlowLimit", "apu_slow_limit", UnitMilliwatt, SubsystemPower, "APU slow PPT power limit"},
	{"SetSkinTempPowerLimit", "skin_temp_power_limit", UnitMilliwatt, SubsystemPower, "Skin temperature power limit"},
	{"SetGFXClock", "gfx_clk", UnitMegahertz, SubsystemClock, "Forced graphics clock"},
	{"SetOCClock", "oc_clk", UnitMegahertz, SubsystemClock, "All-core overclock frequency"},
	{"SetPerCoreOCClock", "per_core_oc_clk", UnitNone, SubsystemClock, "Per-core overclock frequency, core index in bits 20 and up"},
	{"SetOCVolt", "oc_volt", UnitNone, SubsystemVoltage, "Overclock voltage ID"},
	{"SetCOAll", "coall", UnitNone, SubsystemVoltage, "All-core curve optimizer offset"},
	{"SetCOPer", "coper", UnitNone, SubsystemVoltage, "Per-core curve optimizer offset"},
	{"SetCOGFX", "cogfx", UnitNone, SubsystemVoltage, "Graphics curve optimizer offset"},
}

var controlFields = [controlCount]FieldInfo{
	{"DisableOC", "disable_oc", UnitNone, SubsystemProfile, "Disable manual overclocking"},
	{"EnableOC", "enable_oc", UnitNone, SubsystemProfile, "Enable manual overclocking"},
	{"PowerSaving", "power_saving", UnitNone, SubsystemProfile, "Switch to the power saving profile"},
	{"MaxPerformance", "max_performance", UnitNone, SubsystemProfile, "Switch to the maximum performance profile"},
}

func (g Getter) Valid() bool { return g >= 0 && g < getterCount }

func (g Getter) Info() FieldInfo {
	if !g.Valid() {
		return FieldInfo{}
	}
	return getterFields[g]
}

func (g Getter) String() string {
	if !g.Valid() {
		return fmt.Sprintf("getter(%d)", int(g))
	}
	return g.Info().Key()
}

func (c CoreGetter) Valid() bool { return c >= 0 && c < coreGetterCount }

func (c CoreGetter) Info() FieldInfo {
	if !c.Valid() {
		return FieldInfo{}
	}
	return coreGetterFields[c]
}

func (c CoreGetter) String() string {
	if !c.Valid() {
		return fmt.Sprintf("core-getter(%d)", int(c))
	}
	return c.Info().Key()
}

func (s Setter) Valid() bool { return s >= 0 && s < setterCount }

func (s Setter) Info() FieldInfo {
	if !s.Valid() {
		return FieldInfo{}
	}
	return setterFields[s]
}

func (s Setter) String() string {
	if !s.Valid() {
		return fmt.Sprintf("setter(%d)", int(s))
	}
	return s.Info().Key()
}

func (c Control) Valid() bool { return c >= 0 && c < controlCount }

func (c Control) Info() FieldInfo {
	if !c.Valid() {
		return FieldInfo{}
	}
	return controlFields[c]
}

func (c Control) String() string {
	if !c.Valid() {
		return fmt.Sprintf("control(%d)", int(c))
	}
	return c.Info().Key()
}

// Getters returns every telemetry register in table order.
func Getters() []Getter {
	out := make([]Getter, getterCount)
	for i := range out {
		out[i] = Getter(i)
	}
	return out
}

// CoreGetters returns every per-core telemetry register in table order.
func CoreGetters() []CoreGetter {
	out := make([]CoreGetter, coreGetterCount)
	for i := range out {
		out[i] = CoreGetter(i)
	}
	return out
}

// Setters returns every writable limit in table order.
func Setters() []Setter {
	out := make([]Setter, setterCount)
	for i := range out {
		out[i] = Setter(i)
	}
	return out
}

// Controls returns every SMU command in table order.
func Controls() []Control {
	out := make([]Control, controlCount)
	for i := range out {
		out[i] = Control(i)
	}
	return out
}

// ParseSetter resolves a setter from its key (stapm-limit) or native name (stapm_limit).
func ParseSetter(name string) (Setter, error) {
	idx := lookupField(setterFields[:], name)
	if idx < 0 {
		return 0, fmt.Errorf("unknown limit: %s", name)
	}
	return Setter(idx), nil
}

// ParseControl resolves a control from its key (power-saving) or native name.
func ParseControl(name string) (Control, error) {
	idx := lookupField(controlFields[:], name)
	if idx < 0 {
		return 0, fmt.Errorf("unknown control: %s", name)
	}
	return Control(idx), nil
}

// ParseGetter resolves a telemetry register from its key or native name.
func ParseGetter(name string) (Getter, error) {
	idx := lookupField(getterFields[:], name)
	if idx < 0 {
		return 0, fmt.Errorf("unknown telemetry field: %s", name)
	}
	return Getter(idx), nil
}

func lookupField(fields []FieldInfo, name string) int {
	native := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, f := range fields {
		if f.Native == native {
			return i
		}
	}
	return -1
}
