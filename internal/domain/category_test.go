package domain

import "testing"

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		root     string
		expected string
	}{
		{"first segment below root", "Projects/Alpha/one.md", "Projects", "Alpha"},
		{"root with trailing slash", "Projects/Alpha/one.md", "Projects/", "Alpha"},
		{"root with many trailing slashes", "Projects/Alpha/one.md", "Projects///", "Alpha"},
		{"nested root", "Work/Projects/Beta/deep/two.md", "Work/Projects", "Beta"},
		{"file directly in root", "Projects/loose.md", "Projects", "loose.md"},
		{"skips empty segments", "Projects//Alpha/one.md", "Projects", "Alpha"},
		{"skips blank segments", "Projects/ /Alpha/one.md", "Projects", "Alpha"},
		{"path equal to normalized root", "Projects/", "Projects", ""},
		{"path outside root used as-is", "Other/Gamma/three.md", "Projects", "Other"},
		{"prefix without separator is outside root", "ProjectsOld/x.md", "Projects", "ProjectsOld"},
		{"empty root", "Alpha/one.md", "", "Alpha"},
		{"empty path", "", "Projects", ""},
		{"only separators", "///", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CategoryOf(tt.path, tt.root)
			if result != tt.expected {
				t.Errorf("CategoryOf(%q, %q) = %q, expected %q", tt.path, tt.root, result, tt.expected)
			}
		})
	}
}

func TestCategoryOf_Deterministic(t *testing.T) {
	paths := []string{"Projects/Alpha/one.md", "Projects/", "x", "", "Projects/ /b"}
	for _, p := range paths {
		first := CategoryOf(p, "Projects")
		for i := 0; i < 5; i++ {
			if got := CategoryOf(p, "Projects"); got != first {
				t.Fatalf("CategoryOf(%q) changed between calls: %q then %q", p, first, got)
			}
		}
	}
}

func TestItemName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"Projects/Alpha/one.md", "one"},
		{"Projects/Alpha/archive.tar.gz", "archive.tar"},
		{"Projects/Alpha/README", "README"},
		{"one.md", "one"},
		{"Projects/Alpha/.hidden", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ItemName(tt.path); got != tt.expected {
				t.Errorf("ItemName(%q) = %q, expected %q", tt.path, got, tt.expected)
			}
		})
	}
}
