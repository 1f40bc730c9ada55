package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Commit)
}

func TestInfo_Strings(t *testing.T) {
	info := Info{Version: "1.2.3", Commit: "abc", Date: "today", BuiltBy: "ci", GoVersion: "go1.24", Platform: "linux/amd64"}

	assert.Equal(t, "axterm version 1.2.3", info.ShortString())
	assert.True(t, strings.HasPrefix(info.String(), "axterm version 1.2.3\ncommit: abc\n"))
	assert.Contains(t, info.String(), "platform: linux/amd64")
}
