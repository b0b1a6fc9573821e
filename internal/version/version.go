// Package version описывает сборку: коммит и дату берёт из ldflags,
// а если их нет - из информации о сборке, которую пишет go build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Заполняются через -ldflags "-X station-core/internal/version.Commit=...".
var (
	Commit    string
	BuildDate string // YYYY-MM-DD (UTC)
)

// Info - сведения о сборке.
type Info struct {
	Commit    string
	BuildDate string
	Modified  bool
	GoVersion string
}

var readBuildInfo = debug.ReadBuildInfo

// Get собирает сведения о сборке. Безопасна в любой момент.
func Get() Info {
	info := Info{Commit: Commit, BuildDate: BuildDate}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" && len(s.Value) >= len("2006-01-02") {
				info.BuildDate = s.Value[:len("2006-01-02")]
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// Release - короткий идентификатор для отчётов об ошибках.
func Release() string {
	info := Get()
	if info.Commit == "" {
		return "station-core@dev"
	}
	commit := info.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if info.Modified {
		commit += "-dirty"
	}
	return "station-core@" + commit
}

// String returns a human-readable build string.
func String() string {
	info := Get()
	return fmt.Sprintf("Build %s (%s) %s",
		Release(),
		coalesce(info.BuildDate, "unknown date"),
		coalesce(info.GoVersion, "unknown go"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
