package shader

import (
	"regexp"
	"strings"
)

type stage int

const (
	stageVertex stage = iota
	stageFragment
)

var (
	// lineCommentRegex matches // comments up to the end of the line
	lineCommentRegex = regexp.MustCompile(`//[^\n]*`)

	// blockCommentRegex matches /* */ comments, non-nested
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
)

// stripComments removes WGSL comments so commented-out entry points are ignored.
func stripComments(source string) string {
	source = blockCommentRegex.ReplaceAllString(source, "")
	return lineCommentRegex.ReplaceAllString(source, "")
}

// parseEntryPoint returns the name of the first function carrying the stage attribute,
// or an empty string.
func parseEntryPoint(source string, st stage) string {
	re := vertexEntryRegex
	if st == stageFragment {
		re = fragmentEntryRegex
	}
	m := re.FindStringSubmatch(stripComments(source))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
