package history

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple", title: "Hello World", want: "hello-world"},
		{name: "punctuation collapses", title: "What's new in Go 1.24?", want: "what-s-new-in-go-1-24"},
		{name: "leading and trailing noise", title: "  --Debugging tips--  ", want: "debugging-tips"},
		{name: "unicode stripped", title: "caffè ☕ break", want: "caff-break"},
		{name: "already a slug", title: "already-a-slug", want: "already-a-slug"},
		{name: "empty falls back", title: "", want: "conversation"},
		{name: "only symbols falls back", title: "!!!", want: "conversation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	list := []Conversation{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta"},
		{ID: "c", Title: "Gamma"},
	}

	t.Run("preserves list order", func(t *testing.T) {
		got := Resolve(list, []string{"c", "a"})
		want := []Conversation{{ID: "a", Title: "Alpha"}, {ID: "c", Title: "Gamma"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %v, want %v", got, want)
		}
	})

	t.Run("drops stale ids silently", func(t *testing.T) {
		got := Resolve(list, []string{"b", "deleted-long-ago"})
		if len(got) != 1 || got[0].ID != "b" {
			t.Errorf("Resolve() = %v, want just b", got)
		}
	})

	t.Run("nothing resolves", func(t *testing.T) {
		if got := Resolve(list, []string{"x", "y"}); got != nil {
			t.Errorf("Resolve() = %v, want nil", got)
		}
	})

	t.Run("empty ids", func(t *testing.T) {
		if got := Resolve(list, nil); got != nil {
			t.Errorf("Resolve() = %v, want nil", got)
		}
	})
}
