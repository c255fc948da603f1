package app

import "testing"

func TestFilesPrefix(t *testing.T) {
	cases := map[string]string{
		"":                               "/files",
		"/files":                         "/files",
		"/uploads/":                      "/uploads",
		"https://hub.fsti.bi/media/pub/": "/media/pub",
		"https://cdn.fsti.bi":            "/files",
		"%zz":                            "/files",
	}
	for in, want := range cases {
		if got := filesPrefix(in); got != want {
			t.Fatalf("filesPrefix(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestListenAddr(t *testing.T) {
	if got, err := ListenAddr(" 8080 "); err != nil || got != ":8080" {
		t.Fatalf("expected :8080, got %q %v", got, err)
	}
	if got, err := ListenAddr(":9000"); err != nil || got != ":9000" {
		t.Fatalf("expected :9000, got %q %v", got, err)
	}
	if _, err := ListenAddr(""); err == nil {
		t.Fatalf("expected an error for an empty port")
	}
}
