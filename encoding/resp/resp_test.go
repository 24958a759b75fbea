package resp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArray_Encode(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	e := NewEncoder(out)

	// Empty array
	err := e.Array(0)
	assert.NoError(err)
	assert.Equal("*0\r\n", out.String())

	// Array with one item
	out.Reset()
	err = e.Array(1)
	assert.NoError(err)
	assert.Equal("*1\r\n", out.String())

	// Array of large data
	out.Reset()
	err = e.Array(1000000000000)
	assert.NoError(err)
	assert.Equal("*1000000000000\r\n", out.String())
}

func TestSimpleString_Encode(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	err := ReplySimpleString(out, "PONG")
	assert.NoError(err)
	assert.Equal("+PONG\r\n", out.String())
}

func TestBulkString_Encode(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	e := NewEncoder(out)
	assert.NoError(e.BulkString("test"))
	assert.Equal("$4\r\ntest\r\n", out.String())

	out.Reset()
	assert.NoError(e.BulkString(""))
	assert.Equal("$0\r\n\r\n", out.String())
}

func TestError_Encode(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	assert.NoError(ReplyError(out, "ERR unknown"))
	assert.Equal("-ERR unknown\r\n", out.String())
}

func TestInteger_Encode(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	assert.NoError(ReplyInteger(out, -12))
	assert.Equal(":-12\r\n", out.String())
}

func TestNullBulkString_Encode(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	assert.NoError(ReplyNullBulkString(out))
	assert.Equal("$-1\r\n", out.String())
}

func TestReplyArray(t *testing.T) {
	assert := assert.New(t)
	out := bytes.NewBuffer(nil)
	e, err := ReplyArray(out, 2)
	assert.NoError(err)
	assert.NoError(e.BulkString("a"))
	assert.NoError(e.Integer(1))
	assert.Equal("*2\r\n$1\r\na\r\n:1\r\n", out.String())
}

func TestMarshal(t *testing.T) {
	assert := assert.New(t)

	b, err := Marshal(Array{BulkString("hello"), Array{SimpleString("OK"), Array{}}})
	assert.NoError(err)
	assert.Equal("*2\r\n$5\r\nhello\r\n*2\r\n+OK\r\n*0\r\n", string(b))

	_, err = Marshal(nil)
	assert.Error(err)

	_, err = Marshal(Array{BulkString("a"), nil})
	assert.Error(err)
}

func TestValue_String(t *testing.T) {
	assert := assert.New(t)
	v := Array{SimpleString("OK"), BulkString("a b")}
	assert.Equal(`*[+"OK" $"a b"]`, v.String())
	assert.Equal(TypeArray, v.Type())
	assert.Equal("array", v.Type().String())
	assert.Equal("bulkstring", BulkString("").Type().String())
	assert.Equal("simplestring", SimpleString("").Type().String())
	assert.Equal(`unknown("@")`, Type('@').String())
}
