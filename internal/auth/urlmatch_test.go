// File: internal/auth/urlmatch_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesTarget(t *testing.T) {
	const pattern = "https://example.com/publish/success"

	tests := []struct {
		name    string
		current string
		want    bool
	}{
		{"exact", "https://example.com/publish/success", true},
		{"prefix with suffix path", "https://example.com/publish/success/extra", true},
		{"query string stripped", "https://example.com/publish/success?x=1", true},
		{"pattern as substring", "https://cdn.example.com/redirect?next=https://example.com/publish/success", true},
		{"different path", "https://example.com/other", false},
		{"empty current", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesTarget(tt.current, pattern))
		})
	}
}

func TestMatchesTargetEmptyPattern(t *testing.T) {
	assert.False(t, MatchesTarget("https://example.com/", ""))
}

func TestMatchesTargetWithQueryInPattern(t *testing.T) {
	// Kuaishou's manage URL carries a query string in the pattern itself.
	pattern := "https://cp.kuaishou.com/article/manage/video?status=2&from=publish"
	assert.True(t, MatchesTarget(pattern, pattern))
	assert.True(t, MatchesTarget(pattern+"&page=1", pattern))
	assert.False(t, MatchesTarget("https://cp.kuaishou.com/article/publish/video", pattern))
}
