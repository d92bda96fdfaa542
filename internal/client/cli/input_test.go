package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  hello world \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(in, "Again?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine_StripsCRLF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("first\r\nsecond\n"))
	l, err := readLine(in)
	require.NoError(t, err)
	assert.Equal(t, "first", l)
	l, err = readLine(in)
	require.NoError(t, err)
	assert.Equal(t, "second", l)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out, "Enter password")
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out, "Confirm password")
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	s, cut := truncate("short", 300)
	assert.False(t, cut)
	assert.Equal(t, "short", s)

	s, cut = truncate(strings.Repeat("é", 301), 300)
	assert.True(t, cut)
	assert.Equal(t, strings.Repeat("é", 300)+"...", s)
}
