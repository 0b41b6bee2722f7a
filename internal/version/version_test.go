package version

import "testing"

func TestResolveLdflagsWin(t *testing.T) {
	prevV, prevC := Version, Commit
	Version, Commit = "1.2.0", "0123456789abcdef"
	defer func() { Version, Commit = prevV, prevC }()

	info := Resolve()
	if info.Version != "1.2.0" || info.Commit != "0123456789abcdef" {
		t.Fatalf("Resolve() = %+v", info)
	}
	if got := String(); got != "1.2.0 (0123456789ab)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	prev := Version
	Version = ""
	defer func() { Version = prev }()

	if Resolve().Version == "" {
		t.Fatal("expected a fallback version")
	}
}
