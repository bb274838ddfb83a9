package slug

import (
	"fmt"
	"strings"
)

// App is the identifier of a Bitrise app, as shown in the app's settings page
// and used as the {appSlug} path segment.
type App string

// Build identifies a single build and is used as the {buildSlug} path segment.
type Build string

func ParseApp(appSlug string) (App, error) {
	s, err := parseSegment("app", appSlug)
	return App(s), err
}

func ParseBuild(buildSlug string) (Build, error) {
	s, err := parseSegment("build", buildSlug)
	return Build(s), err
}

func parseSegment(kind, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("invalid %s slug %q (empty)", kind, raw)
	}
	if i := strings.IndexAny(s, "/?#% \t\r\n"); i >= 0 {
		return "", fmt.Errorf("invalid %s slug %q (unexpected %q)", kind, raw, s[i])
	}
	return s, nil
}
