package utils

import "testing"

func TestFoldString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"纯小写不变", "hello", "hello"},
		{"大写折叠", "HeLLo", "hello"},
		{"法语重音", "Café", "cafe"},
		{"德语变音", "Über", "uber"},
		{"西语波浪线", "Señor", "senor"},
		{"组合重音序列", "résumé", "resume"},
		{"空串", "", ""},
		{"数字不变", "49.99", "49.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldString(tt.in); got != tt.want {
				t.Errorf("FoldString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFoldContains(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{"大小写不敏感", "Wireless Keyboard", "KEYBOARD", true},
		{"重音不敏感", "Chaise en rotin Café", "cafe", true},
		{"反向重音", "cafe con leche", "Café", true},
		{"金额子串", "49.99", "9.9", true},
		{"不命中", "Wireless Mouse", "keyboard", false},
		{"空 needle 恒命中", "anything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldContains(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("FoldContains(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}
