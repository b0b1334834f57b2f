package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSignals(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listSignals(&out))

	text := out.String()
	for _, want := range []string{"SIGHUP", "SIGKILL", "SIGTERM", "SIGIO"} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, text, "ids 16, 30 have no portable signal")
}
