package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Replace configuration", []string{"file exists"})
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Continue? [y/N]") {
				t.Errorf("prompt missing from output: %q", out.String())
			}
		})
	}
}

func TestConfirm_ShowsWarnings(t *testing.T) {
	var out bytes.Buffer
	Confirm(strings.NewReader("n\n"), &out, "Replace configuration", []string{"first warning", "second warning"})

	for _, want := range []string{"Replace configuration", "first warning", "second warning", "Operation cancelled."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}
