package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestLine_TrimsWhitespace(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  mydb \n\tinner  space\t\n"), &out)

	first, err := p.Line("Enter DB name: ")
	require.NoError(t, err)
	assert.Equal(t, "mydb", first)

	second, err := p.Line("Enter DB username: ")
	require.NoError(t, err)
	assert.Equal(t, "inner  space", second)

	assert.Equal(t, "Enter DB name: Enter DB username: ", out.String())
}

func TestLine_EmptyLineAccepted(t *testing.T) {
	p := New(strings.NewReader("\n"), &bytes.Buffer{})

	got, err := p.Line("Enter DB password: ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLine_FinalLineWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("secret123"), &bytes.Buffer{})

	got, err := p.Line("Enter DB password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret123", got)
}

func TestLine_EOF(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Line("Enter DB name: ")
	require.ErrorIs(t, err, ErrNoInput)
	assert.Contains(t, err.Error(), "Enter DB name:")
}

func TestLine_ReadError(t *testing.T) {
	p := New(failingReader{}, &bytes.Buffer{})

	_, err := p.Line("Enter DB name: ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoInput)
	assert.Contains(t, err.Error(), "device gone")
}

func TestSecret_FallsBackWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  hunter2  \n"), &out)

	got, err := p.Secret("Enter DB password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.Equal(t, "Enter DB password: ", out.String())
}
