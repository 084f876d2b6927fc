package identity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  ", ""},
		{"NA upper", "NA", ""},
		{"n/a lower", "n/a", ""},
		{"N/A padded", "  N/A ", ""},
		{"NaN", "NaN", ""},
		{"profile url", "https://github.com/octocat", "octocat"},
		{"repo url", "https://github.com/octocat/repo", "octocat"},
		{"trailing slash", "https://github.com/octocat/", "octocat"},
		{"no scheme", "github.com/octocat", "octocat"},
		{"www host", "https://www.github.com/octocat/hello-world/tree/main", "octocat"},
		{"double slash after host", "github.com//octocat", "octocat"},
		{"host only", "https://github.com/", ""},
		{"mention", "@octocat", "octocat"},
		{"mention padded", "  @octocat  ", "octocat"},
		{"bare", "octocat", "octocat"},
		{"bare padded", "\toctocat\n", "octocat"},
		{"free text with space", "my github is octocat", "my github is octocat"},
		{"non github url", "gitlab.com/octocat", "gitlab.com/octocat"},
		{"first occurrence wins", "github.com/alice/github.com/bob", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"https://github.com/octocat/repo",
		"@octocat",
		"octocat",
		"  octocat ",
		"github.com/some-user",
		"NA",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if once != "" && !IsCanonical(once) {
			continue
		}
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeCanonicalShape(t *testing.T) {
	inputs := []string{
		"https://github.com/octocat/repo",
		"https://github.com/octocat",
		"@octocat",
		"octocat",
	}

	for _, in := range inputs {
		got := Normalize(in)
		if !IsCanonical(got) {
			t.Errorf("Normalize(%q) = %q, expected a canonical username", in, got)
		}
	}
}

func TestIsSentinel(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"na", true},
		{"N/A", true},
		{"None", true},
		{" none ", true},
		{"octocat", false},
		{"nan", false},
	}

	for _, tt := range tests {
		if got := IsSentinel(tt.in); got != tt.want {
			t.Errorf("IsSentinel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"octocat", true},
		{"octo-cat", true},
		{"", false},
		{"octocat/repo", false},
		{"octo cat", false},
	}

	for _, tt := range tests {
		if got := IsCanonical(tt.in); got != tt.want {
			t.Errorf("IsCanonical(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
