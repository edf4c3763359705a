// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// populated with -ldflags "-X .../internal/version.version=..."
var (
	version   string
	buildTime string
	gitBranch string
	gitCommit string
)

type VersionInfo struct {
	Version   string
	BuildTime string
	GitBranch string
	GitCommit string

	GoVersion string
	GoOS      string
	GoArch    string

	// Library is the libryzenadj version the binary is linked against; zero
	// when built without the ryzenadj tag
	Library ryzenadj.Version
}

// Info returns the version information
func Info() VersionInfo {
	return VersionInfo{
		Version:   version,
		BuildTime: buildTime,
		GitBranch: gitBranch,
		GitCommit: gitCommit,

		GoVersion: runtime.Version(),
		GoOS:      runtime.GOOS,
		GoArch:    runtime.GOARCH,

		Library: ryzenadj.LibraryVersion(),
	}
}

func (v VersionInfo) String() string {
	ver := v.Version
	if ver == "" {
		ver = "dev"
	}
	return fmt.Sprintf("ryzenadj-exporter %s (commit %s, branch %s, built %s) %s %s/%s, %s",
		ver, v.GitCommit, v.GitBranch, v.BuildTime, v.GoVersion, v.GoOS, v.GoArch, v.Library)
}
