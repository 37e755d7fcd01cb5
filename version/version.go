// Package version holds the build version, set at link time with
//
//	-ldflags "-X github.com/battlesnakeio/snake/version.Version=v1.2.3"
package version

// Version is the version of the binary.
var Version = "dev"
