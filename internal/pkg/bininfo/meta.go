// Package bininfo carries build metadata. The variables are stamped at build
// time through go's -ldflags; their names are part of the build scripts.
package bininfo

var (
	// Version is the SemVer version of the binary, with the git commit
	// appended after a plus sign [+] when available.
	Version = "v0.0.0"

	// BuildTime is when the binary was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
