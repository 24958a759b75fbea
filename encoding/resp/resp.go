package resp

import (
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ReplyError replies an error
func ReplyError(w io.Writer, msg string) error {
	return NewEncoder(w).Error(msg)
}

// ReplySimpleString replies a simplestring
func ReplySimpleString(w io.Writer, msg string) error {
	return NewEncoder(w).SimpleString(msg)
}

// ReplyBulkString replies a bulkstring
func ReplyBulkString(w io.Writer, msg string) error {
	return NewEncoder(w).BulkString(msg)
}

// ReplyNullBulkString replies a null bulkstring
func ReplyNullBulkString(w io.Writer) error {
	return NewEncoder(w).NullBulkString()
}

// ReplyInteger replies an integer
func ReplyInteger(w io.Writer, val int64) error {
	return NewEncoder(w).Integer(val)
}

// ReplyArray replies an array header, the caller writes the elements with the returned encoder
func ReplyArray(w io.Writer, size int) (*Encoder, error) {
	r := NewEncoder(w)
	if err := r.Array(size); err != nil {
		return nil, err
	}
	return r, nil
}

// Marshal returns the wire form of v
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes RESP values to w
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a RESP encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w}
}

//Error builds a RESP error
func (r *Encoder) Error(s string) error {
	return r.line(typeError, s)
}

//SimpleString builds a RESP simplestring
func (r *Encoder) SimpleString(s string) error {
	return r.line(TypeSimpleString, s)
}

//BulkString builds a RESP bulkstring
func (r *Encoder) BulkString(s string) error {
	length := strconv.Itoa(len(s))
	_, err := r.w.Write([]byte("$" + length + "\r\n" + s + "\r\n"))
	return err
}

// NullBulkString builds a RESP null bulkstring
func (r *Encoder) NullBulkString() error {
	_, err := r.w.Write([]byte("$-1\r\n"))
	return err
}

// Integer builds a RESP integer
func (r *Encoder) Integer(v int64) error {
	return r.line(typeInteger, strconv.FormatInt(v, 10))
}

// Array builds a RESP array header
func (r *Encoder) Array(size int) error {
	return r.line(TypeArray, strconv.Itoa(size))
}

// Encode writes v and, for an array, all of its elements
func (r *Encoder) Encode(v Value) error {
	switch v := v.(type) {
	case SimpleString:
		return r.SimpleString(string(v))
	case BulkString:
		return r.BulkString(string(v))
	case Array:
		if err := r.Array(len(v)); err != nil {
			return err
		}
		for i := range v {
			if err := r.Encode(v[i]); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return errors.New("encode nil value")
	}
	return errors.Errorf("encode unsupported value %T", v)
}

func (r *Encoder) line(t Type, s string) error {
	buf := make([]byte, 0, len(s)+3)
	buf = append(buf, byte(t))
	buf = append(buf, s...)
	buf = append(buf, crlf...)
	_, err := r.w.Write(buf)
	return err
}
