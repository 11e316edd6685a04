package version

import (
	"fmt"
	"runtime"
)

const UnreleasedVersion = "dev"

// Version is the current git version of the code. It is filled in by the
// build with -ldflags "-X github.com/zthreefires/neonctl/pkg/version.Version=...".
var Version = UnreleasedVersion

// UserAgent is sent with every API request.
func UserAgent() string {
	return fmt.Sprintf("neonctl/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH)
}
