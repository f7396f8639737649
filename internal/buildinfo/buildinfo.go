package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/aalvaropc/blanks/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("blanks %s (commit=%s, date=%s)", Version, Commit, Date)
}
