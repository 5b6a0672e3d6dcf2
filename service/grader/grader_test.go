package grader

import (
	"strings"
	"testing"
)

func TestScoreCacheKey(t *testing.T) {
	a := scoreCacheKey("problem", "output")
	if a != scoreCacheKey("problem", "output") {
		t.Error("key must be deterministic")
	}
	if a == scoreCacheKey("problem", "other") {
		t.Error("different outputs must not collide")
	}
	// The length prefix keeps shifted boundaries apart.
	if scoreCacheKey("ab", "c") == scoreCacheKey("a", "bc") {
		t.Error("problem/output boundary must be part of the key")
	}
}

func TestTruncateComment(t *testing.T) {
	if got := truncateComment("already visited site 3\n"); got != "already visited site 3" {
		t.Errorf("unexpected comment %q", got)
	}
	long := strings.Repeat("x", 2*commentTextLimit)
	got := truncateComment(long)
	if len(got) != commentTextLimit {
		t.Errorf("truncated comment has length %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated comment must end with ellipsis: %q", got)
	}
}
