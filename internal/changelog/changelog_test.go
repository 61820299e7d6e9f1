package changelog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	content := `# Changelog

## v0.2.0 (2026-07-14)

- Export conversations to Markdown
- Theme picker with live preview

## v0.1.0 (2026-06-02)

- Initial release
`

	entries := Parse(content)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Version != "0.2.0" {
		t.Errorf("expected version 0.2.0, got %s", entries[0].Version)
	}
	if entries[0].Date != "2026-07-14" {
		t.Errorf("expected date 2026-07-14, got %s", entries[0].Date)
	}
	if len(entries[0].Changes) != 2 {
		t.Errorf("expected 2 changes, got %d", len(entries[0].Changes))
	}
	if entries[0].Changes[0] != "Export conversations to Markdown" {
		t.Errorf("unexpected first change: %s", entries[0].Changes[0])
	}

	if entries[1].Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %s", entries[1].Version)
	}
	if len(entries[1].Changes) != 1 {
		t.Errorf("expected 1 change, got %d", len(entries[1].Changes))
	}
}

func TestParseVersionHeaderVariants(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		version string
		date    string
	}{
		{
			name:    "with v prefix and date",
			header:  "## v1.2.3 (2026-01-15)",
			version: "1.2.3",
			date:    "2026-01-15",
		},
		{
			name:    "without v prefix",
			header:  "## 1.2.3 (2026-01-15)",
			version: "1.2.3",
			date:    "2026-01-15",
		},
		{
			name:    "without date",
			header:  "## v1.2.3",
			version: "1.2.3",
			date:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Parse(tt.header + "\n\n- Something\n")
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Version != tt.version {
				t.Errorf("expected version %s, got %s", tt.version, entries[0].Version)
			}
			if entries[0].Date != tt.date {
				t.Errorf("expected date %q, got %q", tt.date, entries[0].Date)
			}
		})
	}
}

func TestParseIgnoresNonVersionHeaders(t *testing.T) {
	content := `# Changelog

## Unreleased

- Should not appear

## v0.1.0

- Should appear
`

	entries := Parse(content)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %s", entries[0].Version)
	}
	// Bullets before the first version header are dropped
	if len(entries[0].Changes) != 1 || entries[0].Changes[0] != "Should appear" {
		t.Errorf("unexpected changes: %v", entries[0].Changes)
	}
}

func TestParseEmbeddedContent(t *testing.T) {
	entries := Parse(Content)
	if len(entries) == 0 {
		t.Fatal("embedded changelog produced no entries")
	}
	for _, e := range entries {
		if e.Version == "" {
			t.Error("entry with empty version")
		}
		if len(e.Changes) == 0 {
			t.Errorf("version %s has no changes", e.Version)
		}
	}
	// Newest first
	for i := 1; i < len(entries); i++ {
		if CompareVersions(entries[i-1].Version, entries[i].Version) <= 0 {
			t.Errorf("entries out of order: %s before %s", entries[i-1].Version, entries[i].Version)
		}
	}
}

func TestGetChangesSince(t *testing.T) {
	entries := []Entry{
		{Version: "0.3.0", Changes: []string{"c"}},
		{Version: "0.2.0", Changes: []string{"b"}},
		{Version: "0.1.0", Changes: []string{"a"}},
	}

	tests := []struct {
		name     string
		lastSeen string
		want     []string
	}{
		{
			name:     "empty last seen returns everything",
			lastSeen: "",
			want:     []string{"0.3.0", "0.2.0", "0.1.0"},
		},
		{
			name:     "middle version returns newer only",
			lastSeen: "0.2.0",
			want:     []string{"0.3.0"},
		},
		{
			name:     "oldest version returns the rest",
			lastSeen: "0.1.0",
			want:     []string{"0.3.0", "0.2.0"},
		},
		{
			name:     "current version returns nothing",
			lastSeen: "0.3.0",
			want:     nil,
		},
		{
			name:     "future version returns nothing",
			lastSeen: "9.9.9",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetChangesSince(tt.lastSeen, entries)
			var versions []string
			for _, e := range got {
				versions = append(versions, e.Version)
			}
			if !reflect.DeepEqual(versions, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, versions)
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.0.1", "1.0.0", 1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"0.9.0", "1.0.0", -1},
		{"v1.0.0", "1.0.0", 0},
		{"1.0.0", "v1.0.1", -1},
		{"10.0.0", "9.0.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := CompareVersions(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		want  [3]int
	}{
		{"1.2.3", [3]int{1, 2, 3}},
		{"v1.2.3", [3]int{1, 2, 3}},
		{"1.2", [3]int{1, 2, 0}},
		{"1", [3]int{1, 0, 0}},
		{"", [3]int{0, 0, 0}},
		{"1.abc.3", [3]int{1, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseVersion(tt.input); got != tt.want {
				t.Errorf("parseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full ISO timestamp",
			input: "2026-08-20T14:30:00Z",
			want:  "2026-08-20",
		},
		{
			name:  "date only",
			input: "2026-08-20",
			want:  "2026-08-20",
		},
		{
			name:  "short string passes through",
			input: "2026",
			want:  "2026",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDate(tt.input); got != tt.want {
				t.Errorf("parseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "dash bullets",
			body: "- First change\n- Second change",
			want: []string{"First change", "Second change"},
		},
		{
			name: "asterisk bullets",
			body: "* First change\n* Second change",
			want: []string{"First change", "Second change"},
		},
		{
			name: "mixed bullets with prose",
			body: "Some intro text\n\n- A change\n\nMore prose\n* Another change",
			want: []string{"A change", "Another change"},
		},
		{
			name: "bullets with commit SHAs",
			body: "- abc123d Fix sidebar highlight\n- def4567 Add theme picker",
			want: []string{"Fix sidebar highlight", "Add theme picker"},
		},
		{
			name: "indented bullets",
			body: "  - Indented change",
			want: []string{"Indented change"},
		},
		{
			name: "bullet with only whitespace after",
			body: "- \n* ",
			want: nil,
		},
		{
			name: "empty body",
			body: "",
			want: nil,
		},
		{
			name: "real world release body",
			body: "## What's Changed\n* abc123d Bulk delete by @someone in #42\n\n**Full Changelog**: https://example.com/compare/v0.2.0...v0.3.0",
			want: []string{"Bulk delete by @someone in #42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseBody(tt.body)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseBody(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestStripCommitSHA(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "short SHA prefix",
			input: "abc123d Fix the thing",
			want:  "Fix the thing",
		},
		{
			name:  "full SHA prefix",
			input: "abc123def456789012345678901234567890abcd Commit message",
			want:  "Commit message",
		},
		{
			name:  "no SHA",
			input: "Just a normal message",
			want:  "Just a normal message",
		},
		{
			name:  "hex-looking word without space",
			input: "abc123def456789012345678901234567890abcdNoSpace",
			want:  "abc123def456789012345678901234567890abcdNoSpace",
		},
		{
			name:  "seven letter word is not a SHA",
			input: "Restyle the footer",
			want:  "Restyle the footer",
		},
		{
			name:  "just a short SHA with space",
			input: "abc123d ",
			want:  "",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCommitSHA(tt.input); got != tt.want {
				t.Errorf("stripCommitSHA(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsHexString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"abc123", true},
		{"ABCDEF", true},
		{"0123456789abcdef", true},
		{"", true},
		{"xyz", false},
		{"abc 123", false},
		{"abc-123", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isHexString(tt.input); got != tt.want {
				t.Errorf("isHexString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFetchReleases(t *testing.T) {
	var gotAccept, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode([]githubRelease{
			{
				TagName:     "v0.3.0",
				PublishedAt: "2026-08-20T14:30:00Z",
				Body:        "- abc123d Bulk delete\n- Theme picker",
			},
			{
				TagName:     "v0.2.0",
				PublishedAt: "2026-07-14T09:00:00Z",
				Body:        "* Export to Markdown",
			},
		})
	}))
	defer server.Close()

	orig := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = orig }()

	entries, err := FetchReleases()
	if err != nil {
		t.Fatalf("FetchReleases() error: %v", err)
	}

	if gotAccept != "application/vnd.github+json" {
		t.Errorf("expected Accept application/vnd.github+json, got %q", gotAccept)
	}
	if !strings.Contains(gotUserAgent, "recall") {
		t.Errorf("expected User-Agent to identify recall, got %q", gotUserAgent)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Version != "0.3.0" {
		t.Errorf("expected version 0.3.0, got %s", entries[0].Version)
	}
	if entries[0].Date != "2026-08-20" {
		t.Errorf("expected date 2026-08-20, got %s", entries[0].Date)
	}
	want := []string{"Bulk delete", "Theme picker"}
	if !reflect.DeepEqual(entries[0].Changes, want) {
		t.Errorf("expected changes %v, got %v", want, entries[0].Changes)
	}
	if entries[1].Version != "0.2.0" {
		t.Errorf("expected version 0.2.0, got %s", entries[1].Version)
	}
}

func TestFetchReleasesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	orig := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = orig }()

	if _, err := FetchReleases(); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
