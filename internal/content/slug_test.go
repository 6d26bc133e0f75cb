package content

import (
	"regexp"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My First Post.md", "my-first-post"},
		{"Hello_World!.md", "hello-world"},
		{"posts/2024 -- Notes.md", "2024-notes"},
		{"UPPER.md", "upper"},
		{"already-a-slug.md", "already-a-slug"},
		{"---.md", ""},
		{"...md", ""},
	}

	for _, c := range cases {
		got := Slugify(c.in)
		if got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
		if got != "" && !slugPattern.MatchString(got) {
			t.Errorf("Slugify(%q) = %q does not match %v", c.in, got, slugPattern)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, in := range []string{"My First Post.md", "a__b.md", "Ünïcode Näme.md"} {
		once := Slugify(in)
		twice := Slugify(once + ".md")
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSlugifyCollision(t *testing.T) {
	// Case and punctuation differences collide by design.
	a := Slugify("My Post.md")
	b := Slugify("my_post.md")
	if a != b {
		t.Errorf("expected collision, got %q and %q", a, b)
	}
}
