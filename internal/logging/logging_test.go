package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env       string
		json      bool
		wantDebug bool
	}{
		{"dev", false, true},
		{"", false, true},
		{"staging", true, true},
		{"prod", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.env, &buf)

			logger.Debug("debug line")
			assert.Equal(t, tt.wantDebug, strings.Contains(buf.String(), "debug line"))

			buf.Reset()
			logger.Info("info line", "k", "v")
			out := buf.String()
			require.Contains(t, out, "info line")

			if tt.json {
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &entry))
				assert.Equal(t, "v", entry["k"])
			} else {
				assert.Contains(t, out, "k=v")
			}
		})
	}
}
