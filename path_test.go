package ipf

import "testing"

func TestNormalizeEntryPath(t *testing.T) {
	cases := map[string]string{
		`sub\dir\file.txt`: "sub/dir/file.txt",
		"./a/b.txt":        "a/b.txt",
		"/a/b.txt":         "a/b.txt",
		"a/b/":             "a/b",
		"  a/b.txt  ":      "a/b.txt",
		"":                 "",
	}

	for in, want := range cases {
		if got := normalizeEntryPath(in); got != want {
			t.Errorf("normalizeEntryPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateEntryPathRejectsEmptyAndTraversal(t *testing.T) {
	for _, bad := range []string{"", "/", "../escape.txt"} {
		if _, err := validateEntryPath(bad); err == nil {
			t.Errorf("validateEntryPath(%q) accepted, want error", bad)
		}
	}

	if got, err := validateEntryPath(`sub\file.txt`); err != nil || got != "sub/file.txt" {
		t.Errorf("validateEntryPath = (%q, %v), want (%q, nil)", got, err, "sub/file.txt")
	}
}

func TestNoCompressExtension(t *testing.T) {
	yes := []string{"a.jpg", "A.JPG", "b.jpeg", "c.fsb", "d.mp3"}
	no := []string{"a.txt", "b.png", "c", "d.jpgx"}

	for _, p := range yes {
		if !noCompressExtension(p) {
			t.Errorf("noCompressExtension(%q) = false, want true", p)
		}
	}
	for _, p := range no {
		if noCompressExtension(p) {
			t.Errorf("noCompressExtension(%q) = true, want false", p)
		}
	}
}
