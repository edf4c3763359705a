// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"errors"
	"fmt"

	"github.com/prometheus/procfs"
)

// cpuInfoReader is an interface to prometheus/procfs
type cpuInfoReader interface {
	CPUInfo() ([]procfs.CPUInfo, error)
}

type realCPUInfo struct {
	fs procfs.FS
}

func (r *realCPUInfo) CPUInfo() ([]procfs.CPUInfo, error) {
	return r.fs.CPUInfo()
}

func newCPUInfoReader(mountPoint string) (cpuInfoReader, error) {
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, err
	}
	return &realCPUInfo{fs: fs}, nil
}

// physicalCores counts distinct (physical id, core id) pairs so that SMT
// siblings are not sampled twice. Kernels that do not report topology fall
// back to one core per logical processor.
func physicalCores(r cpuInfoReader) (int, error) {
	infos, err := r.CPUInfo()
	if err != nil {
		return 0, fmt.Errorf("failed to read cpuinfo: %w", err)
	}
	if len(infos) == 0 {
		return 0, errors.New("no processors listed in cpuinfo")
	}

	type coreKey struct{ pkg, core string }
	seen := make(map[coreKey]struct{}, len(infos))
	for _, ci := range infos {
		if ci.CoreID == "" {
			return len(infos), nil
		}
		seen[coreKey{ci.PhysicalID, ci.CoreID}] = struct{}{}
	}
	return len(seen), nil
}
