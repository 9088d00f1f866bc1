// Package build reports the version of the running binary, either injected
// as JSON through -ldflags or read from the module's embedded build info.
package build

import (
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"strings"
)

const shortCommit = 7

// Info describes how the binary was built.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"` //nolint:tagliatelle
	GitDate   string `json:"git_date"`   //nolint:tagliatelle
	GoVersion string `json:"go_version"` //nolint:tagliatelle
	Modified  bool   `json:"modified"`
}

// Parse deserializes build Info injected at link time.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	if js == "" || js == "{}" {
		return nil, false
	}

	var info Info

	if err := json.Unmarshal([]byte(js), &info); err != nil {
		slog.Warn("Failed to parse build info from JSON",
			"data", js,
			"error", err)

		return nil, false
	}

	return &info, true
}

// FromBuildInfo extracts Info from the Go toolchain's build metadata.
func FromBuildInfo(bi *debug.BuildInfo) *Info {
	info := &Info{Version: "(devel)"}
	if bi == nil {
		return info
	}

	info.GoVersion = bi.GoVersion

	if v := bi.Main.Version; v != "" {
		info.Version = v
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			info.GitDate = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	return info
}

// Current prefers link-time info and falls back to the embedded build info.
func Current(injected string) *Info {
	if info, ok := Parse(injected); ok {
		return info
	}

	bi, _ := debug.ReadBuildInfo()

	return FromBuildInfo(bi)
}

func (i *Info) String() string {
	var details []string

	if commit := i.GitCommit; commit != "" {
		if len(commit) > shortCommit {
			commit = commit[:shortCommit]
		}

		if i.Modified {
			commit += "-dirty"
		}

		details = append(details, commit)
	}

	if i.GitDate != "" {
		details = append(details, i.GitDate)
	}

	if i.GoVersion != "" {
		details = append(details, i.GoVersion)
	}

	if len(details) == 0 {
		return i.Version
	}

	return i.Version + " (" + strings.Join(details, ", ") + ")"
}
