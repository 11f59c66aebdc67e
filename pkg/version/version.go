package version

// Set by -ldflags "-X github.com/charlie0129/powerstate/pkg/version.Version=..." at build time.
var (
	Version   = "v0.0.0-dev"
	GitCommit = "unknown"
)
