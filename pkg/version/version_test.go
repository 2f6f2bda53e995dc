package version

import (
	"strings"
	"testing"
)

func TestInfo_ReturnsFormattedString(t *testing.T) {
	// vars set at build-time, here using default "dev"
	info := Info()

	if !strings.Contains(info, "Hostkit") {
		t.Errorf("Expected info to contain 'Hostkit', got: %s", info)
	}
	if !strings.Contains(info, Version) {
		t.Errorf("Expected info to contain version '%s'", Version)
	}
	if !strings.Contains(info, Commit) {
		t.Errorf("Expected info to contain commit '%s'", Commit)
	}
	if !strings.Contains(info, BuildDate) {
		t.Errorf("Expected info to contain build date '%s'", BuildDate)
	}
}

func TestGet_ReturnsCorrectStruct(t *testing.T) {
	v := Get()

	if v.Version != Version {
		t.Errorf("Expected version %s, got %s", Version, v.Version)
	}
	if v.Commit != Commit {
		t.Errorf("Expected commit %s, got %s", Commit, v.Commit)
	}
	if v.BuildDate != BuildDate {
		t.Errorf("Expected build date %s, got %s", BuildDate, v.BuildDate)
	}
}

func TestGet_Semantic(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := []struct {
		version string
		want    string
	}{
		{"dev", ""},
		{"1.4.2", "1.4.2"},
		{"v2.0", "2.0.0"},
		{"1.5.0-rc.1", "1.5.0-rc.1"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Get().Semantic; got != tt.want {
			t.Errorf("Get().Semantic with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestSemantic_DevDoesNotParse(t *testing.T) {
	if _, err := Semantic(); err == nil {
		t.Error("expected dev build to have no semantic version")
	}
}

func TestIsNewer(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := []struct {
		current, release string
		want             bool
	}{
		{"1.2.0", "1.3.0", true},
		{"v1.2.0", "v1.2.0", false},
		{"1.2.0", "1.1.9", false},
		{"1.2.0", "1.3.0-rc.1", false},
		{"1.3.0-rc.1", "1.3.0-rc.2", true},
		{"1.3.0-rc.1", "1.3.0", true},
	}
	for _, tt := range tests {
		Version = tt.current
		got, err := IsNewer(tt.release)
		if err != nil {
			t.Fatalf("IsNewer(%q) with %q: %v", tt.release, tt.current, err)
		}
		if got != tt.want {
			t.Errorf("IsNewer(%q) with %q = %v, want %v", tt.release, tt.current, got, tt.want)
		}
	}

	Version = "1.0.0"
	if _, err := IsNewer("latest"); err == nil {
		t.Error("expected error for unparsable release")
	}
}
