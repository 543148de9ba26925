package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFull(t *testing.T) {
	assert.Contains(t, Full(), Version)

	origBuildTime, origGitCommit := BuildTime, GitCommit
	defer func() {
		BuildTime, GitCommit = origBuildTime, origGitCommit
	}()

	BuildTime = "2026-01-01"
	GitCommit = "abcdef"

	full := Full()
	assert.Contains(t, full, "2026-01-01")
	assert.Contains(t, full, "abcdef")
}
