// Package version holds the build identity stamped into release binaries.
package version

// Release builds override these via -ldflags, e.g.
//
//	go build -ldflags "-X repotutor/internal/version.Version=1.0.0 -X repotutor/internal/version.Commit=abc123"
var (
	Version   = "0.4.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info is the short form used in --version output, with an abbreviated
// commit hash when one was stamped in.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full lists name, version, commit and build timestamp on separate lines.
func Full() string {
	return "repotutor version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}
