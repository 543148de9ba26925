package version

// Name identifies the service in logs and the health endpoint.
const Name = "dr-islam-website"

// Build metadata, overridable at build time via -ldflags.
var (
	Version   = "1.4.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Full returns the version string with build metadata when present.
func Full() string {
	if BuildTime != "unknown" && GitCommit != "unknown" {
		return Version + " (commit: " + GitCommit + ", built: " + BuildTime + ")"
	}
	return Version
}
