package metadata

import "fmt"

// overridden with -ldflags "-X github.com/labi-le/richclip/internal/metadata.Version=..."
var (
	Version    = "freshest"
	CommitHash = "n/a"
	BuildTime  = "n/a"
)

func String() string {
	return fmt.Sprintf("richclip %s (commit %s, built %s)", Version, CommitHash, BuildTime)
}
