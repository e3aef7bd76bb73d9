package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, "dev", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Equal(t, "mimic dev (commit dev, built unknown)", info.String())
}

func TestStringAbbreviatesCommit(t *testing.T) {
	info := Info{Version: "v1.2.3", CommitHash: "abc1234def5678", BuildTime: "2026-08-23T00:00:00Z"}
	assert.Equal(t, "mimic v1.2.3 (commit abc1234, built 2026-08-23T00:00:00Z)", info.String())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc1234", Info{CommitHash: "abc1234def"}.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}
