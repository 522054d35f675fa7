package validate

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/deixis/swiftkit/internal/report"
)

// SnippetFile replaces the temp file path in parsed diagnostics.
const SnippetFile = "<snippet>"

var (
	// /tmp/x.swift:3:14: error: cannot convert value of type 'String' to specified type 'Int'
	// <unknown>:0: error: unable to load standard library
	locatedPattern = regexp.MustCompile(`^(.+?):(\d+)(?::(\d+))?: (error|warning|note): (.*)$`)
	// error: no input files
	barePattern = regexp.MustCompile(`^(error|warning|note): (.*)$`)
)

// ParseDiagnostics extracts compiler messages from swiftc stderr. Source
// excerpts, caret lines and anything else that is not a diagnostic header
// are skipped. Locations in file are reported as SnippetFile.
func ParseDiagnostics(stderr []byte, file string) []report.Diagnostic {
	var out []report.Diagnostic
	for _, line := range strings.Split(string(stderr), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if m := locatedPattern.FindStringSubmatch(line); m != nil {
			d := report.Diagnostic{
				File:     displayPath(m[1], file),
				Severity: m[4],
				Message:  m[5],
			}
			d.Line, _ = strconv.Atoi(m[2])
			if m[3] != "" {
				d.Col, _ = strconv.Atoi(m[3])
			}
			out = append(out, d)
			continue
		}
		if m := barePattern.FindStringSubmatch(line); m != nil {
			out = append(out, report.Diagnostic{Severity: m[1], Message: m[2]})
		}
	}
	return out
}

func displayPath(path, file string) string {
	if file == "" {
		return path
	}
	if path == file || filepath.Base(path) == filepath.Base(file) {
		return SnippetFile
	}
	return path
}
