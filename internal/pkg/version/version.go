package version

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > commit.txt"
//go:generate sh -c "printf %s $(git rev-parse --abbrev-ref HEAD) > branch.txt"
//go:generate sh -c "printf %s $(git describe --tags --abbrev=0 2>/dev/null || echo none) > tag.txt"
//go:generate sh -c "git diff-index --quiet HEAD -- && echo clean > dirty.txt || echo dirty > dirty.txt"

//go:embed commit.txt
var commit string

//go:embed branch.txt
var branch string

//go:embed tag.txt
var tag string

//go:embed dirty.txt
var dirty string

type gitInfo struct {
	Commit string
	Branch string
	Tag    string
	Dirty  bool
}

// String renders the metadata on a single line, e.g. "v1.2.0 (main@abc123, dirty)".
func (g gitInfo) String() string {
	state := "clean"
	if g.Dirty {
		state = "dirty"
	}
	return fmt.Sprintf("%s (%s@%s, %s)", g.Tag, g.Branch, g.Commit, state)
}

var info = gitInfo{
	Commit: strings.TrimSpace(commit),
	Branch: strings.TrimSpace(branch),
	Tag:    strings.TrimSpace(tag),
	Dirty:  strings.TrimSpace(dirty) == "dirty",
}

// GetGitInfo returns a copy of the gitInfo struct containing git metadata.
func GetGitInfo() gitInfo {
	return info
}
