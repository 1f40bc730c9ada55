package executor

import (
	"regexp"
	"strings"
)

// ansiPattern matches CSI color and erase-line sequences: ESC [ with up to two
// one-or-two digit parameters, terminated by m or K. Longer sequences are left
// untouched.
var ansiPattern = regexp.MustCompile(`\x1b\[([0-9]{1,2}(;[0-9]{1,2})?)?[mK]`)

var (
	separatorRun = regexp.MustCompile(`\\+`)
	drivePath    = regexp.MustCompile(`^[A-Za-z]:/`)
)

// Sanitize strips terminal color and erase-line escape sequences from output.
func Sanitize(output string) string {
	return ansiPattern.ReplaceAllString(output, "")
}

// NormalizePath converts a path printed by the interpreter to forward-slash
// form. Runs of backslashes, whether native separators or escaped ones,
// become a single '/'.
func NormalizePath(line string) string {
	return separatorRun.ReplaceAllString(strings.TrimSpace(line), "/")
}

// IsAbsolute reports whether a normalized path is rooted ("/..." or "X:/...").
func IsAbsolute(path string) bool {
	return strings.HasPrefix(path, "/") || drivePath.MatchString(path)
}

// SplitDirectory takes the last non-empty line of output as a directory and
// returns it normalized, together with the output that preceded it. ok is
// false when there is no such line or it is not an absolute path; rest is
// then the whole output.
func SplitDirectory(output string) (dir string, rest string, ok bool) {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")

	last := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = i
			break
		}
	}
	if last < 0 {
		return "", strings.TrimRight(output, "\r\n"), false
	}

	dir = NormalizePath(lines[last])
	if !IsAbsolute(dir) {
		return "", strings.TrimRight(output, "\r\n"), false
	}

	before := trimTrailingBlank(lines[:last])
	// PowerShell prints pwd as a table: "Path", "----", then the value.
	if n := len(before); n >= 2 && isRule(before[n-1]) && strings.TrimSpace(before[n-2]) == "Path" {
		before = trimTrailingBlank(before[:n-2])
	}
	return dir, strings.Join(before, "\n"), true
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isRule(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && strings.Trim(line, "-") == ""
}
