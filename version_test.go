package artran

import (
	"strings"
	"testing"
)

func TestFullVersion(t *testing.T) {
	saved := GitCommit
	defer func() { GitCommit = saved }()

	GitCommit = "0123456789abcdef"
	if got, want := FullVersion(), Version+"+0123456"; got != want {
		t.Errorf("FullVersion() = %q, want %q", got, want)
	}
	if Commit() != GitCommit {
		t.Errorf("Commit() = %q, want %q", Commit(), GitCommit)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, Name+"/"+Version) {
		t.Errorf("UserAgent() = %q", ua)
	}
}
