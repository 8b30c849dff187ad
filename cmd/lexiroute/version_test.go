package main

import (
	"runtime"
	"testing"
)

func TestVersionString(t *testing.T) {
	cases := []struct {
		revision string
		want     string
	}{
		{"", "lexiroute dev (" + runtime.Version() + ")"},
		{"abc123", "lexiroute dev (abc123, " + runtime.Version() + ")"},
		{"0123456789abcdef0123", "lexiroute dev (0123456789ab, " + runtime.Version() + ")"},
	}
	for _, tc := range cases {
		if got := versionString(tc.revision); got != tc.want {
			t.Errorf("versionString(%q) = %q, want %q", tc.revision, got, tc.want)
		}
	}
}
