package resp

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestScanner(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(decoderOf("+PING\r\n*1\r\n$4\r\nPING\r\n$0\r\n\r\n"))

	var got []Value
	for s.Scan() {
		got = append(got, s.Value())
	}
	assert.NoError(s.Err())
	assert.Equal([]Value{SimpleString("PING"), Array{BulkString("PING")}, BulkString("")}, got)

	// not restartable
	assert.False(s.Scan())
	assert.Nil(s.Value())
}

func TestScanner_Empty(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(decoderOf(""))
	assert.False(s.Scan())
	assert.NoError(s.Err())
}

func TestScanner_Error(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(decoderOf("+OK\r\n$5\r\nhel"))

	assert.True(s.Scan())
	assert.Equal(SimpleString("OK"), s.Value())

	assert.False(s.Scan())
	assert.Nil(s.Value())
	assert.True(errors.Is(s.Err(), ErrTruncated))

	assert.False(s.Scan())
	assert.True(errors.Is(s.Err(), ErrTruncated))
}

func TestScanner_SourceError(t *testing.T) {
	assert := assert.New(t)
	r := io.MultiReader(strings.NewReader("+OK\r\n"), iotest.ErrReader(io.ErrClosedPipe))
	s := NewScanner(NewDecoder(NewReader(r)))

	assert.True(s.Scan())
	assert.False(s.Scan())
	assert.True(errors.Is(s.Err(), io.ErrClosedPipe))
}
