// Package changelog provides parsing and filtering of changelog entries.
// Entries come from the embedded CHANGELOG.md, optionally refreshed from
// GitHub releases for installs that predate the current build.
package changelog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

//go:embed CHANGELOG.md
var Content string

// Entry represents a single version's changelog entry
type Entry struct {
	Version string
	Date    string
	Changes []string
}

// versionRegex matches version headers like "## v0.3.0 (2026-08-20)" or "## v0.3.0"
var versionRegex = regexp.MustCompile(`^##\s+v?(\d+\.\d+\.\d+)(?:\s+\(([^)]+)\))?`)

// Parse extracts changelog entries from markdown content
func Parse(content string) []Entry {
	var entries []Entry
	var current *Entry

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)

		// Check for version header
		if matches := versionRegex.FindStringSubmatch(line); matches != nil {
			// Save previous entry
			if current != nil {
				entries = append(entries, *current)
			}
			current = &Entry{
				Version: matches[1],
				Date:    matches[2],
				Changes: []string{},
			}
			continue
		}

		// Check for bullet point (change item)
		if current != nil && strings.HasPrefix(line, "- ") {
			change := strings.TrimPrefix(line, "- ")
			current.Changes = append(current.Changes, change)
		}
	}

	// Don't forget the last entry
	if current != nil {
		entries = append(entries, *current)
	}

	return entries
}

// GetChangesSince returns all entries newer than lastSeen version.
// Entries are returned in reverse chronological order (newest first).
func GetChangesSince(lastSeen string, entries []Entry) []Entry {
	if lastSeen == "" {
		return entries
	}

	var result []Entry
	for _, entry := range entries {
		if CompareVersions(entry.Version, lastSeen) > 0 {
			result = append(result, entry)
		}
	}
	return result
}

// CompareVersions compares two semantic versions.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func CompareVersions(a, b string) int {
	aParts := parseVersion(a)
	bParts := parseVersion(b)

	for i := 0; i < 3; i++ {
		if aParts[i] < bParts[i] {
			return -1
		}
		if aParts[i] > bParts[i] {
			return 1
		}
	}
	return 0
}

// parseVersion extracts [major, minor, patch] from a version string
func parseVersion(v string) [3]int {
	// Strip leading 'v' if present
	v = strings.TrimPrefix(v, "v")

	parts := strings.Split(v, ".")
	var result [3]int
	for i := 0; i < 3 && i < len(parts); i++ {
		result[i], _ = strconv.Atoi(parts[i])
	}
	return result
}

// githubRelease is the slice of the GitHub releases API response we care about.
type githubRelease struct {
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
	Body        string `json:"body"`
}

// releasesURL is a var so tests can point it at a local server.
var releasesURL = "https://api.github.com/repos/recallhq/recall/releases"

// FetchReleases pulls published releases from GitHub and converts them to
// changelog entries, newest first.
func FetchReleases() ([]Entry, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest(http.MethodGet, releasesURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "recall")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github releases: unexpected status %d", resp.StatusCode)
	}

	var releases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(releases))
	for _, r := range releases {
		entries = append(entries, Entry{
			Version: strings.TrimPrefix(r.TagName, "v"),
			Date:    parseDate(r.PublishedAt),
			Changes: parseBody(r.Body),
		})
	}
	return entries, nil
}

// parseDate reduces an ISO 8601 timestamp to its date part.
func parseDate(timestamp string) string {
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}

// parseBody extracts bullet items from a release body, tolerating both
// dash and asterisk bullets and stripping leading commit SHAs.
func parseBody(body string) []string {
	var changes []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)

		var item string
		switch {
		case strings.HasPrefix(line, "- "):
			item = strings.TrimPrefix(line, "- ")
		case strings.HasPrefix(line, "* "):
			item = strings.TrimPrefix(line, "* ")
		default:
			continue
		}

		item = stripCommitSHA(strings.TrimSpace(item))
		if item != "" {
			changes = append(changes, item)
		}
	}
	return changes
}

// stripCommitSHA removes a leading full (40-char) or short (7-char) commit
// SHA followed by a space. Release notes generated from commit logs often
// carry these.
func stripCommitSHA(s string) string {
	if len(s) >= 41 && s[40] == ' ' && isHexString(s[:40]) {
		return s[41:]
	}
	if len(s) >= 8 && s[7] == ' ' && isHexString(s[:7]) {
		return s[8:]
	}
	return s
}

func isHexString(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
