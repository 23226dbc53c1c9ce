package artran

import "runtime/debug"

const (
	// Name is the application name.
	Name = "artran"

	// Description is a short description of the application.
	Description = "Article translation with a bounded, deduplicating translation cache"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/artran"
)

// Build information, set at release time with
//
//	go build -ldflags "-X github.com/ZaguanLabs/artran.Version=1.2.0 -X github.com/ZaguanLabs/artran.GitCommit=$(git rev-parse HEAD)"
var (
	Version   = "0.1.0"
	GitCommit = ""
	BuildDate = ""
)

// Commit returns GitCommit, or the VCS revision recorded by the Go toolchain.
func Commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// FullVersion returns the version with a short commit suffix when known.
func FullVersion() string {
	v := Version
	if c := Commit(); c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		v += "+" + c
	}
	return v
}

// UserAgent returns the User-Agent sent to translation services.
func UserAgent() string {
	return Name + "/" + Version + " (+" + Repository + ")"
}
