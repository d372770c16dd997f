package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/ludo-technologies/pyformat/internal/version"
)

func TestShort(t *testing.T) {
	if version.Short() == "" {
		t.Error("Short() should return non-empty string")
	}
}

func TestShort_LdflagsWin(t *testing.T) {
	saved := version.Version
	t.Cleanup(func() { version.Version = saved })

	version.Version = "v1.2.3"
	if got := version.Short(); got != "v1.2.3" {
		t.Errorf("Short() = %q, want v1.2.3", got)
	}
}

func TestInfo(t *testing.T) {
	info := version.Info()

	if !strings.HasPrefix(info, "pyformat ") {
		t.Errorf("Info() should start with the program name, got %q", info)
	}
	if !strings.Contains(info, runtime.Version()) {
		t.Errorf("Info() should contain Go version %s", runtime.Version())
	}
	expectedArch := runtime.GOOS + "/" + runtime.GOARCH
	if !strings.Contains(info, expectedArch) {
		t.Errorf("Info() should contain OS/Arch %s", expectedArch)
	}
	for _, field := range []string{"Commit:", "Built:", "Go:", "OS/Arch:"} {
		if !strings.Contains(info, field) {
			t.Errorf("Info() missing %s", field)
		}
	}
}

func TestDetails(t *testing.T) {
	saved := version.Commit
	t.Cleanup(func() { version.Commit = saved })
	version.Commit = "abc123"

	d := version.Details()
	if d.Name != "pyformat" || d.Commit != "abc123" {
		t.Errorf("Details() = %+v", d)
	}
	if d.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Details().Platform = %q", d.Platform)
	}
}
