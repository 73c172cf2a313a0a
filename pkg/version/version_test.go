package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())

	old := version
	t.Cleanup(func() { version = old })
	version = "v9.9.9"
	assert.Equal(t, "v9.9.9", GetVersion())
}

func TestString(t *testing.T) {
	oldVersion, oldCommit := version, commit
	t.Cleanup(func() { version, commit = oldVersion, oldCommit })

	version = "v1.2.3"
	commit = ""
	assert.Equal(t, "v1.2.3", String())

	commit = "abc1234def5678"
	assert.Equal(t, "v1.2.3 (abc1234)", String())
}
