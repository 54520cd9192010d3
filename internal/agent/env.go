package agent

import (
	"fmt"
	"net/url"
	"strings"
)

// Environment is the part of the reservation system a task is confined to.
type Environment struct {
	Host     string
	StartURL string
	// Section is the start path without a trailing slash, empty for the site root.
	Section string
}

// NewEnvironment reports ok=false when startURL has no host; such a task
// carries the bare script.
func NewEnvironment(startURL string) (Environment, bool) {
	u, err := url.Parse(startURL)
	if err != nil || u.Host == "" {
		return Environment{}, false
	}
	return Environment{
		Host:     strings.ToLower(u.Host),
		StartURL: startURL,
		Section:  strings.TrimRight(u.Path, "/"),
	}, true
}

// Instructions puts the site constraints and the placeholder list in front of script.
func (e Environment) Instructions(script string, sensitive []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are working in the reservation system at %s.\n", e.Host)
	fmt.Fprintf(&b, "Start page: %s.\n", e.StartURL)
	if e.Section != "" {
		fmt.Fprintf(&b, "Stay inside the section whose URL starts with %s and do not use the global menu to leave it.\n", e.Section)
	}
	b.WriteString("Do not leave this domain and do not open external search engines.\n")
	if len(sensitive) > 0 {
		fmt.Fprintf(&b, "Type these placeholders exactly as written; their values come from your own secret store: %s.\n",
			strings.Join(sensitive, ", "))
	}
	b.WriteString("Follow the booking steps exactly, in order:\n")
	b.WriteString(script)

	return b.String()
}
