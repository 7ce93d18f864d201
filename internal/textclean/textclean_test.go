package textclean

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{">Prince Fred", "Prince Fred"},
		{"Farmer's daughter", "Farmers daughter"},
		{"Farmer\u0092s daughter", "Farmers daughter"},
		{"Nicolas II Romanov", "Nicolas II Romanov"},
		{"ACGT", "ACGT"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestReadLines_Latin1(t *testing.T) {
	// 0x92 and 0xA0 are single bytes in the latin1 stream.
	raw := []byte(">Farmer\x92s daughter\r\n\n  mtDNA \nAC?T\n\xa0\n")

	lines, err := ReadLines(strings.NewReader(string(raw)), EncodingLatin1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Farmers daughter", "mtDNA", "AC?T"}, lines)
}

func TestReadLines_UTF8(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("Grigori Rasputin\n\nY chromosome\nTTGA"), EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, []string{"Grigori Rasputin", "Y chromosome", "TTGA"}, lines)
}

func TestReadLines_UnknownEncoding(t *testing.T) {
	_, err := ReadLines(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("Prince Fred\nmtDNA\nACGT\n"), 0644))

	lines, err := ReadFile(path, EncodingLatin1)
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"), EncodingLatin1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
