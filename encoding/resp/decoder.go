package resp

import (
	"bytes"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Decoding limits used when no option overrides them
const (
	DefaultMaxDepth       = 128
	DefaultMaxBulkLength  = 512 * 1024 * 1024
	DefaultMaxArrayLength = 1024 * 1024

	// preallocation cap for arrays, the rest grows as elements arrive
	maxArrayPrealloc = 1024
)

var (
	// ErrMalformed indicates a framing error: unknown marker, bad length prefix or bad terminator
	ErrMalformed = errors.New("malformed framing")
	// ErrTruncated indicates the stream ended inside a value
	ErrTruncated = errors.New("truncated input")
	// ErrEncoding indicates a payload which is not valid utf-8
	ErrEncoding = errors.New("invalid utf-8 payload")
	// ErrTooDeep indicates arrays nested deeper than allowed
	ErrTooDeep = errors.New("nesting too deep")
	// ErrTooLarge indicates a declared length or count above the limit
	ErrTooLarge = errors.New("length exceeds limit")
)

var crlf = []byte{'\r', '\n'}

// ErrorKind classifies a decode error into a short label for logs and metrics
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrEncoding):
		return "encoding"
	case errors.Is(err, ErrTooDeep):
		return "too_deep"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	}
	return "source"
}

// DecoderOption customizes a Decoder
type DecoderOption func(d *Decoder)

// MaxDepth limits how many arrays may enclose a value, 0 means no limit
func MaxDepth(n int) DecoderOption {
	return func(d *Decoder) { d.maxDepth = n }
}

// MaxBulkLength limits the declared length of a bulk string, 0 means no limit
func MaxBulkLength(n int64) DecoderOption {
	return func(d *Decoder) { d.maxBulk = n }
}

// MaxArrayLength limits the declared count of an array, 0 means no limit
func MaxArrayLength(n int64) DecoderOption {
	return func(d *Decoder) { d.maxArray = n }
}

// MaxLineLength limits simple strings and prefix lines, 0 means no limit
func MaxLineLength(n int) DecoderOption {
	return func(d *Decoder) { d.maxLine = n }
}

// Lenient skips the check of the two bytes after a bulk string payload
func Lenient() DecoderOption {
	return func(d *Decoder) { d.lenient = true }
}

// Decoder reads values one at a time from a ByteSource.
// It does not buffer anything itself, bytes after the current value stay in the source.
type Decoder struct {
	src      ByteSource
	maxDepth int
	maxBulk  int64
	maxArray int64
	maxLine  int
	lenient  bool
	err      error
}

// NewDecoder creates a RESP decoder
func NewDecoder(src ByteSource, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		src:      src,
		maxDepth: DefaultMaxDepth,
		maxBulk:  DefaultMaxBulkLength,
		maxArray: DefaultMaxArrayLength,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Next decodes the value at the current position.
// It returns io.EOF only when the stream ends before the first byte of a value,
// every other failure is returned as an error and is sticky.
func (d *Decoder) Next() (Value, error) {
	if d.err != nil {
		return nil, d.err
	}
	marker, err := d.src.ReadByte()
	if err != nil {
		if err == io.EOF {
			d.err = io.EOF
			return nil, io.EOF
		}
		d.err = errors.Wrap(err, "read type marker")
		return nil, d.err
	}
	v, err := d.decode(marker, 0)
	if err != nil {
		d.err = err
		return nil, err
	}
	return v, nil
}

func (d *Decoder) decode(marker byte, depth int) (Value, error) {
	switch Type(marker) {
	case TypeSimpleString:
		return d.readSimpleString()
	case TypeBulkString:
		return d.readBulkString()
	case TypeArray:
		return d.readArray(depth)
	}
	return nil, errors.Wrapf(ErrMalformed, "invalid magic byte %q", marker)
}

func (d *Decoder) readSimpleString() (Value, error) {
	line, err := d.readLine()
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(line) {
		return nil, errors.Wrap(ErrEncoding, "simple string")
	}
	return SimpleString(line), nil
}

func (d *Decoder) readBulkString() (Value, error) {
	n, err := d.readLength(d.maxBulk)
	if err != nil {
		return nil, errors.WithMessage(err, "bulk string")
	}

	var body bytes.Buffer
	if n < bytes.MinRead {
		body.Grow(int(n))
	}
	if _, err := io.CopyN(&body, d.src, n); err != nil {
		if err == io.EOF {
			return nil, errors.Wrapf(ErrTruncated, "bulk string of %d bytes", n)
		}
		return nil, errors.Wrap(err, "read bulk string")
	}

	var term [2]byte
	if _, err := io.ReadFull(d.src, term[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrap(ErrTruncated, "bulk string terminator")
		}
		return nil, errors.Wrap(err, "read bulk string terminator")
	}
	if !d.lenient && !bytes.Equal(term[:], crlf) {
		return nil, errors.Wrapf(ErrMalformed, "bulk string terminated by %q", term[:])
	}

	if !utf8.Valid(body.Bytes()) {
		return nil, errors.Wrap(ErrEncoding, "bulk string")
	}
	return BulkString(body.String()), nil
}

func (d *Decoder) readArray(depth int) (Value, error) {
	if d.maxDepth > 0 && depth >= d.maxDepth {
		return nil, errors.Wrapf(ErrTooDeep, "array at depth %d, max %d", depth, d.maxDepth)
	}
	n, err := d.readLength(d.maxArray)
	if err != nil {
		return nil, errors.WithMessage(err, "array")
	}

	arr := make(Array, 0, min(n, maxArrayPrealloc))
	for i := int64(0); i < n; i++ {
		marker, err := d.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, errors.Wrapf(ErrTruncated, "array got %d of %d elements", i, n)
			}
			return nil, errors.Wrap(err, "read array element")
		}
		v, err := d.decode(marker, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

// readLength reads a prefix line holding a non-negative decimal integer
func (d *Decoder) readLength(limit int64) (int64, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}
	if len(line) == 0 {
		return 0, errors.Wrap(ErrMalformed, "empty length")
	}
	for _, c := range line {
		if c < '0' || c > '9' {
			return 0, errors.Wrapf(ErrMalformed, "invalid length %q", line)
		}
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "invalid length %q", line)
	}
	if limit > 0 && n > limit {
		return 0, errors.Wrapf(ErrTooLarge, "length %d, max %d", n, limit)
	}
	return n, nil
}

// readLine reads up to and including CRLF and returns the bytes before it.
// A CR which is not followed by LF is part of the line.
func (d *Decoder) readLine() ([]byte, error) {
	buf := make([]byte, 0, 16)
	for {
		b, err := d.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, errors.Wrap(ErrTruncated, "incomplete line")
			}
			return nil, errors.Wrap(err, "read line")
		}
		buf = append(buf, b)
		l := len(buf)
		if l >= 2 && buf[l-2] == '\r' && buf[l-1] == '\n' {
			if d.maxLine > 0 && l-2 > d.maxLine {
				return nil, errors.Wrapf(ErrTooLarge, "line longer than %d", d.maxLine)
			}
			return buf[:l-2], nil
		}
		if d.maxLine > 0 && l > d.maxLine+2 {
			return nil, errors.Wrapf(ErrTooLarge, "line longer than %d", d.maxLine)
		}
	}
}
