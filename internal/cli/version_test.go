package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"dev", "dev"},
		{"1.2.0", "v1.2.0"},
		{"v1.2.0", "v1.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.input))
		})
	}
}

func TestSetVersionInfo(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, commit, date
	defer SetVersionInfo(oldVersion, oldCommit, oldDate)

	SetVersionInfo("1.0.0", "abc123", "2024-01-01")
	assert.Equal(t, "1.0.0", GetVersion())
	assert.Equal(t, "v1.0.0", rootCmd.Version)
}

func TestVersionCommand(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, commit, date
	defer SetVersionInfo(oldVersion, oldCommit, oldDate)
	SetVersionInfo("1.0.0", "abc123", "2024-01-01")

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionShort = false
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "rtop")
	assert.Contains(t, out.String(), "v1.0.0")
	assert.Contains(t, out.String(), "commit: abc123")

	out.Reset()
	versionShort = true
	defer func() { versionShort = false }()
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "1.0.0\n", out.String())
}
