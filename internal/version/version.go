package version

import (
	"runtime/debug"
)

const (
	AppName        = "shopfront"
	AppDescription = "Storefront bot: tickets, orders, embeds, autoresponders, sticky messages."
)

// Stamped with -ldflags at release time; falls back to module build info.
var (
	Version   = "dev"
	BuildDate = ""
	GoVersion = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	GoVersion = info.GoVersion
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.time" {
			BuildDate = s.Value
		}
	}
}
