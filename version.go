// Package swiftkit holds build metadata shared by the swiftkit commands.
package swiftkit

// Version is the swiftkit release version.
const Version = "0.3.0"
