// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"tiny budget no ellipsis", "hello", 2, "he"},
		{"zero budget", "hello", 0, ""},
		{"unicode safe", "héllo wörld", 8, "héllo..."},
		{"cjk safe", "日本語のテキスト", 5, "日本..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateRunes(tc.input, tc.maxRunes)
			if got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
			}
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	if got := TruncateRunesNoEllipsis("hello world", 5); got != "hello" {
		t.Errorf("TruncateRunesNoEllipsis = %q, want %q", got, "hello")
	}
	if got := TruncateRunesNoEllipsis("hi", 5); got != "hi" {
		t.Errorf("TruncateRunesNoEllipsis = %q, want %q", got, "hi")
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters occupy two columns each.
	got := TruncateWidth("日本語テキスト", 9)
	if StringWidth(got) > 9 {
		t.Errorf("TruncateWidth result %q exceeds width 9 (got %d)", got, StringWidth(got))
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("TruncateWidth result %q should end in ellipsis", got)
	}

	if got := TruncateWidth("abc", 10); got != "abc" {
		t.Errorf("TruncateWidth should not touch short strings, got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
}

func TestCollapseNewlines(t *testing.T) {
	got := CollapseNewlines("line one\nline two\r\nline three")
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("CollapseNewlines left line breaks in %q", got)
	}
}

// =============================================================================
// CONVERSION TESTS
// =============================================================================

func TestIntToString(t *testing.T) {
	if got := IntToString(42); got != "42" {
		t.Errorf("IntToString(42) = %q", got)
	}
	if got := IntToString(-7); got != "-7" {
		t.Errorf("IntToString(-7) = %q", got)
	}
}

func TestStringToInt(t *testing.T) {
	if got := StringToInt("123", 0); got != 123 {
		t.Errorf("StringToInt(123) = %d", got)
	}
	if got := StringToInt("bogus", 9); got != 9 {
		t.Errorf("StringToInt fallback = %d, want 9", got)
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	if err := AtomicWriteFile(path, []byte("payload"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want %q", data, "payload")
	}

	// Overwrite must replace, not append.
	if err := AtomicWriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("content after overwrite = %q, want %q", data, "v2")
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}
