// Package scaffold generates the directory tree, SwiftPM manifest and
// entry point of a new SwiftUI application.
package scaffold

import (
	"fmt"
	"sort"
	"strings"
)

// Platform identifies a template in the table.
type Platform string

// Supported platforms.
const (
	IOS           Platform = "ios"
	MacOS         Platform = "macos"
	Multiplatform Platform = "multiplatform"
)

// DefaultPlatform is the template used when a key is not in the table.
const DefaultPlatform = IOS

// Template describes one platform flavour of the generated project.
type Template struct {
	Name             string
	Platforms        []string // SwiftPM platform names, e.g. "iOS"
	DeploymentTarget string
}

// PlatformString renders Platforms for display, e.g. "iOS, macOS".
func (t Template) PlatformString() string {
	return strings.Join(t.Platforms, ", ")
}

// templates is read-only after init; Lookup returns copies.
var templates = map[Platform]Template{
	IOS: {
		Name:             "iOS App (SwiftUI)",
		Platforms:        []string{"iOS"},
		DeploymentTarget: "17.0",
	},
	MacOS: {
		Name:             "macOS App (SwiftUI)",
		Platforms:        []string{"macOS"},
		DeploymentTarget: "14.0",
	},
	Multiplatform: {
		Name:             "Multiplatform App",
		Platforms:        []string{"iOS", "macOS"},
		DeploymentTarget: "iOS 17.0, macOS 14.0",
	},
}

// manifestPlatforms maps SwiftPM platform names to their Package.swift entry.
var manifestPlatforms = map[string]string{
	"iOS":   ".iOS(.v17)",
	"macOS": ".macOS(.v14)",
}

// Lookup returns the template for key, or the DefaultPlatform template when
// key is unknown.
func Lookup(key string) Template {
	t, ok := templates[Platform(strings.ToLower(key))]
	if !ok {
		t = templates[DefaultPlatform]
	}
	t.Platforms = append([]string(nil), t.Platforms...)
	return t
}

// ParsePlatform validates a user-supplied platform key.
func ParsePlatform(key string) (Platform, error) {
	p := Platform(strings.ToLower(key))
	if _, ok := templates[p]; !ok {
		return "", fmt.Errorf("invalid platform %q (must be one of %s)", key, strings.Join(PlatformNames(), ", "))
	}
	return p, nil
}

// PlatformNames lists the table keys in sorted order.
func PlatformNames() []string {
	names := make([]string, 0, len(templates))
	for p := range templates {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}
