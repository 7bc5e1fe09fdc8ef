package platform

import (
	"os"
	"os/exec"
	"strings"
)

// Seams for tests.
var (
	statFunc = func(path string) bool {
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}
	lookPath = exec.LookPath
)

// hostVersions lists host application install names, newest first.
var hostVersions = []string{
	"Adobe After Effects 2025",
	"Adobe After Effects 2024",
	"Adobe After Effects 2023",
	"Adobe After Effects 2022",
	"Adobe After Effects 2021",
	"Adobe After Effects CC 2020",
	"Adobe After Effects CC 2019",
}

// fallbackVersion is reported when nothing on disk matched.
const fallbackVersion = "Adobe After Effects 2024"

// ProbeWorkerPath returns the first existing render worker binary, trying
// the hint, then the known install locations, then PATH. It never fails: when nothing
// exists it returns the conventional install path for this OS so callers
// still have something to show or reject.
func (p Profile) ProbeWorkerPath(hint string) string {
	for _, candidate := range p.workerCandidates(hint) {
		if statFunc(candidate) {
			return candidate
		}
	}
	if path, err := lookPath(p.WorkerExecutableName()); err == nil && path != "" {
		return path
	}
	return p.fallbackWorkerPath()
}

func (p Profile) workerCandidates(hint string) []string {
	exe := p.WorkerExecutableName()

	var candidates []string
	if hint != "" {
		hint = strings.TrimRight(hint, `\/`)
		if strings.EqualFold(lastElem(hint), exe) {
			candidates = append(candidates, hint)
		} else {
			candidates = append(candidates, p.Join(hint, exe))
			if p.IsDarwin() {
				candidates = append(candidates, p.Join(hint, "Contents", "MacOS", exe))
			}
		}
	}

	switch p.Family {
	case Windows:
		for _, v := range hostVersions {
			candidates = append(candidates, windowsWorkerPath(v))
		}
	case Darwin:
		for _, v := range hostVersions {
			candidates = append(candidates, darwinWorkerPath(v))
		}
	}
	return candidates
}

func (p Profile) fallbackWorkerPath() string {
	switch p.Family {
	case Windows:
		return windowsWorkerPath(fallbackVersion)
	case Darwin:
		return darwinWorkerPath(fallbackVersion)
	default:
		return p.WorkerExecutableName()
	}
}

func windowsWorkerPath(version string) string {
	return `C:\Program Files\Adobe\` + version + `\Support Files\aerender.exe`
}

func darwinWorkerPath(version string) string {
	return "/Applications/" + version + "/" + version + ".app/Contents/MacOS/aerender"
}

func lastElem(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}
