package version //nolint:testpackage // testing internal implementation.

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyBuildInfo_FillsUnsetFields(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date

	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})

	Version, Commit, Date = "dev", unknown, "2026-01-01"

	applyBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
		},
	})

	assert.Equal(t, "v1.4.0", Version)
	assert.Equal(t, "abc123", Commit)
	assert.Equal(t, "2026-01-01", Date)
}
