package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/encoding"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		wantText    string
		wantCharset []string
	}{
		{
			name:        "PlainUTF8",
			input:       []byte("Name,Age\nAmara Hassan,28\n"),
			wantText:    "Name,Age\nAmara Hassan,28\n",
			wantCharset: []string{encoding.UTF8},
		},
		{
			name:        "UTF8WithBOM",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name;Age\n")...),
			wantText:    "Name;Age\n",
			wantCharset: []string{encoding.UTF8},
		},
		{
			// "Zoë,30\n" with ë = 0xEB, which both single-byte charsets agree on.
			name:        "Latin1Fallback",
			input:       []byte{'Z', 'o', 0xEB, ',', '3', '0', '\n'},
			wantText:    "Zoë,30\n",
			wantCharset: []string{encoding.Windows1252, encoding.ISO88599},
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'N', 0, 'a', 0, 'm', 0, 'e', 0},
			wantText:    "Name",
			wantCharset: []string{encoding.UTF16LE},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Contains(t, tt.wantCharset, charset)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, string(got))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
