package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/netatmo/internal/netatmo"
)

func TestMaskToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcdef", "******"},
		{"5c810ab2|1f5d8e", "5c810a********"},
	}

	for _, tt := range tests {
		if got := maskToken(tt.token); got != tt.want {
			t.Errorf("maskToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestOnlyPasswordMissing(t *testing.T) {
	full := netatmo.Credentials{ClientID: "id", ClientSecret: "secret", Username: "user"}
	if !onlyPasswordMissing(full) {
		t.Error("only the password is missing")
	}

	full.ClientSecret = ""
	if onlyPasswordMissing(full) {
		t.Error("client secret is missing too")
	}

	full.ClientSecret, full.Password = "secret", "pw"
	if onlyPasswordMissing(full) {
		t.Error("nothing is missing")
	}
}

func TestSetup_UnknownFormatNamed(t *testing.T) {
	defer func(p, f string) { configPath, outputFormat = p, f }(configPath, outputFormat)

	configPath = filepath.Join(t.TempDir(), "config.yaml")
	outputFormat = "xml"

	err := setup()
	if err == nil {
		t.Fatal("setup() should reject an unknown format")
	}
	if !strings.Contains(err.Error(), `"xml"`) {
		t.Errorf("error = %v, should name the format", err)
	}
}
