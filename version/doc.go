// Package version reports the sylph release compiled into a binary.
//
// When sylph is imported as a dependency the version comes from the
// module's build info. Binaries built from this repository can stamp it
// with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/sylph/version.Version=1.2.0"
package version
