// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

// gen-accessors renders the named Session accessors and the cgo dispatch tables
// from the register tables in internal/ryzenadj.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"text/template"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

const header = `// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

// Code generated by gen-accessors. DO NOT EDIT.
`

var funcs = template.FuncMap{
	"unit": func(u ryzenadj.Unit) string {
		if u == ryzenadj.UnitNone {
			return ""
		}
		return fmt.Sprintf(" (%s)", u)
	},
}

var accessorsTmpl = template.Must(template.New("accessors").Funcs(funcs).Parse(header + `
package ryzenadj
{{range .Getters}}
// {{.Name}} reads get_{{.Native}}{{unit .Unit}}.
func (s *Session) {{.Name}}() float32 {
	return s.Read({{.Name}})
}
{{end}}{{range .CoreGetters}}
// {{.Name}} reads get_{{.Native}} for one core{{unit .Unit}}.
func (s *Session) {{.Name}}(core uint32) float32 {
	return s.ReadCore({{.Name}}, core)
}
{{end}}{{range .Setters}}
// {{.Name}} writes set_{{.Native}}{{unit .Unit}}.
func (s *Session) {{.Name}}(value uint32) error {
	return s.Write({{.Name}}, value)
}
{{end}}{{range .Controls}}
// {{.Name}} sends set_{{.Native}}.
func (s *Session) {{.Name}}() error {
	return s.Control({{.Name}})
}
{{end}}`))

var nativeTmpl = template.Must(template.New("native").Funcs(funcs).Parse(header + `
//go:build cgo && ryzenadj

package ryzenadj

/*
#include <stddef.h>
#include <stdint.h>
#include <ryzenadj.h>

typedef float (*ryzenadj_getter)(ryzen_access);
typedef float (*ryzenadj_core_getter)(ryzen_access, uint32_t);
typedef int (*ryzenadj_setter)(ryzen_access, uint32_t);
typedef int (*ryzenadj_control)(ryzen_access);

static float call_getter(ryzenadj_getter fn, ryzen_access ry) { return fn(ry); }
static float call_core_getter(ryzenadj_core_getter fn, ryzen_access ry, uint32_t core) { return fn(ry, core); }
static int call_setter(ryzenadj_setter fn, ryzen_access ry, uint32_t value) { return fn(ry, value); }
static int call_control(ryzenadj_control fn, ryzen_access ry) { return fn(ry); }
*/
import "C"

var nativeGetters = [getterCount]C.ryzenadj_getter{
{{- range .Getters}}
	C.ryzenadj_getter(C.get_{{.Native}}),
{{- end}}
}

var nativeCoreGetters = [coreGetterCount]C.ryzenadj_core_getter{
{{- range .CoreGetters}}
	C.ryzenadj_core_getter(C.get_{{.Native}}),
{{- end}}
}

var nativeSetters = [setterCount]C.ryzenadj_setter{
{{- range .Setters}}
	C.ryzenadj_setter(C.set_{{.Native}}),
{{- end}}
}

var nativeControls = [controlCount]C.ryzenadj_control{
{{- range .Controls}}
	C.ryzenadj_control(C.set_{{.Native}}),
{{- end}}
}

func (a *cgoAccess) Get(g Getter) float32 {
	return float32(C.call_getter(nativeGetters[g], a.ry))
}

func (a *cgoAccess) GetCore(g CoreGetter, core uint32) float32 {
	return float32(C.call_core_getter(nativeCoreGetters[g], a.ry, C.uint32_t(core)))
}

func (a *cgoAccess) Set(s Setter, value uint32) int {
	return int(C.call_setter(nativeSetters[s], a.ry, C.uint32_t(value)))
}

func (a *cgoAccess) Control(c Control) int {
	return int(C.call_control(nativeControls[c], a.ry))
}
`))

// tables is the template input: field metadata in table order.
type tables struct {
	Getters     []ryzenadj.FieldInfo
	CoreGetters []ryzenadj.FieldInfo
	Setters     []ryzenadj.FieldInfo
	Controls    []ryzenadj.FieldInfo
}

func collect() tables {
	var t tables
	for _, g := range ryzenadj.Getters() {
		t.Getters = append(t.Getters, g.Info())
	}
	for _, g := range ryzenadj.CoreGetters() {
		t.CoreGetters = append(t.CoreGetters, g.Info())
	}
	for _, s := range ryzenadj.Setters() {
		t.Setters = append(t.Setters, s.Info())
	}
	for _, c := range ryzenadj.Controls() {
		t.Controls = append(t.Controls, c.Info())
	}
	return t
}

func render(tmpl *template.Template, t tables) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, t); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", tmpl.Name(), err)
	}
	return src, nil
}

func main() {
	outDir := flag.String("out", "internal/ryzenadj", "Directory of the ryzenadj package")
	flag.Parse()

	t := collect()
	files := map[string]*template.Template{
		"zz_generated_accessors.go": accessorsTmpl,
		"zz_generated_native.go":    nativeTmpl,
	}

	for name, tmpl := range files {
		src, err := render(tmpl, t)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}
