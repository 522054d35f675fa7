package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/deixis/swiftkit/internal/runner"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ToolsVersion is the swift-tools-version written into generated manifests.
const ToolsVersion = "5.9"

// Options selects what to generate. Name is used verbatim in paths and
// source text; it is not checked to be a valid Swift identifier.
type Options struct {
	Name     string
	Platform string // table key; unknown keys fall back to DefaultPlatform
	Path     string // parent directory; "" means the working directory
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Dir      string   // project directory
	Files    []string // paths relative to Dir
	Template Template
}

// data holds the variables available to the embedded templates.
type data struct {
	Name              string
	ToolsVersion      string
	ManifestPlatforms string
}

// file maps an embedded template to its location in the project.
type file struct {
	tmpl string
	rel  func(name string) string
}

var files = []file{
	{tmpl: "Package.swift.tmpl", rel: func(string) string { return "Package.swift" }},
	{tmpl: "main.swift.tmpl", rel: func(name string) string { return filepath.Join("Sources", name, "main.swift") }},
	{tmpl: "gitignore.tmpl", rel: func(string) string { return ".gitignore" }},
}

// Generate writes the project tree under <Path>/<Name>. Existing files are
// overwritten.
func Generate(opts Options) (*Result, error) {
	t := Lookup(opts.Platform)
	dir := projectDir(opts)

	if err := os.MkdirAll(filepath.Join(dir, "Sources", opts.Name), 0o755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	d := data{
		Name:              opts.Name,
		ToolsVersion:      ToolsVersion,
		ManifestPlatforms: manifestPlatformList(t),
	}

	result := &Result{Dir: dir, Template: t}
	for _, f := range files {
		content, err := render(f.tmpl, d)
		if err != nil {
			return nil, err
		}
		rel := f.rel(opts.Name)
		if err := os.WriteFile(filepath.Join(dir, rel), content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", rel, err)
		}
		result.Files = append(result.Files, rel)
	}
	return result, nil
}

// InitPackage creates <Path>/<Name> and runs `swift package init` in it
// instead of writing the SwiftUI templates. r must accept the project
// directory as a working directory.
func InitPackage(ctx context.Context, r CommandRunner, swift string, opts Options) (*Result, error) {
	if swift == "" {
		swift = "swift"
	}
	dir := projectDir(opts)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	argv := []string{swift, "package", "init", "--type", "executable", "--name", opts.Name}
	res, err := r.Run(ctx, argv, dir)
	if err != nil {
		return nil, fmt.Errorf("swift package init: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("swift package init exited %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return &Result{Dir: dir, Template: Lookup(opts.Platform)}, nil
}

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, cwd string) (*runner.Result, error)
}

// PrintSummary writes the human-readable report of a generated app.
func PrintSummary(w io.Writer, res *Result, name string) {
	fmt.Fprintf(w, "✅ Created SwiftUI app at %s\n", res.Dir)
	fmt.Fprintf(w, "   Platform: %s\n", res.Template.PlatformString())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "To build and run:")
	fmt.Fprintf(w, "   cd %s\n", name)
	fmt.Fprintln(w, "   swift build")
	fmt.Fprintln(w, "   swift run")
}

// PrintPackageSummary writes the report of InitPackage.
func PrintPackageSummary(w io.Writer, res *Result) {
	fmt.Fprintf(w, "✅ Created Swift package at %s\n", res.Dir)
}

func projectDir(opts Options) string {
	parent := opts.Path
	if parent == "" {
		parent = "."
	}
	return filepath.Join(parent, opts.Name)
}

func manifestPlatformList(t Template) string {
	entries := make([]string, 0, len(t.Platforms))
	for _, p := range t.Platforms {
		if e, ok := manifestPlatforms[p]; ok {
			entries = append(entries, e)
		}
	}
	return strings.Join(entries, ",\n        ")
}

func render(name string, d data) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
