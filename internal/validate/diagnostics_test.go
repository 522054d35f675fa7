package validate

import (
	"testing"

	"github.com/deixis/swiftkit/internal/report"
)

func TestParseDiagnostics(t *testing.T) {
	file := "/var/folders/x/T/swiftkit-snippet-123.swift"
	stderr := file + `:1:14: error: cannot convert value of type 'String' to specified type 'Int'
let x: Int = "oops"
             ^~~~~~
` + file + `:3:5: warning: initialization of immutable value 'y' was never used
    let y = 1
    ~~~~^~~~
/usr/lib/swift/Swift.swiftinterface:42:10: note: 'print' declared here
<unknown>:0: error: unable to load standard library for target 'arm64-apple-macosx14.0'
error: no input files
`

	got := ParseDiagnostics([]byte(stderr), file)
	want := []report.Diagnostic{
		{File: SnippetFile, Line: 1, Col: 14, Severity: "error", Message: "cannot convert value of type 'String' to specified type 'Int'"},
		{File: SnippetFile, Line: 3, Col: 5, Severity: "warning", Message: "initialization of immutable value 'y' was never used"},
		{File: "/usr/lib/swift/Swift.swiftinterface", Line: 42, Col: 10, Severity: "note", Message: "'print' declared here"},
		{File: "<unknown>", Line: 0, Severity: "error", Message: "unable to load standard library for target 'arm64-apple-macosx14.0'"},
		{Severity: "error", Message: "no input files"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diagnostic %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseDiagnostics_Empty(t *testing.T) {
	if got := ParseDiagnostics(nil, "x.swift"); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
	if got := ParseDiagnostics([]byte("   ^~~~\nsome context line\n"), "x.swift"); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

func TestParseDiagnostics_CRLF(t *testing.T) {
	got := ParseDiagnostics([]byte("a.swift:2:1: error: expected expression\r\n"), "/tmp/a.swift")
	if len(got) != 1 || got[0].Message != "expected expression" || got[0].File != SnippetFile {
		t.Errorf("got %+v", got)
	}
}
