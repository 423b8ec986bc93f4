package utils

import (
	"bytes"
	"testing"
)

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/", ""},
		{"/0", "[0]"},
		{"/1/priority", "[1].priority"},
		{"#/foo/bar/0/baz", "foo.bar[0].baz"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}

func TestBoolFromString(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on", " On "} {
		if !BoolFromString(v) {
			t.Errorf("BoolFromString(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "no", "off", "maybe"} {
		if BoolFromString(v) {
			t.Errorf("BoolFromString(%q) = true, want false", v)
		}
	}
}

func TestIsTTYNonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer should not be a TTY")
	}
}
