package resp

import (
	"bufio"
	"context"
	"io"
	"net"
	"time"
)

// ByteSource is what a Decoder reads from. ReadByte returns io.EOF at the end of
// the stream, Read is only used through io.ReadFull.
// A *bufio.Reader is a ByteSource.
type ByteSource interface {
	io.ByteReader
	io.Reader
}

// NewReader returns r itself if it is a ByteSource, or r wrapped by a bufio.Reader
func NewReader(r io.Reader) ByteSource {
	if src, ok := r.(ByteSource); ok {
		return src
	}
	return bufio.NewReader(r)
}

// ConnSource is a ByteSource over a network connection whose reads can be abandoned.
// Each read from the connection must complete within the idle timeout, and every
// pending read is aborted once ctx is done.
type ConnSource struct {
	*bufio.Reader
	stop func() bool
}

// NewConnSource creates a ConnSource, a zero timeout disables the idle deadline
func NewConnSource(ctx context.Context, conn net.Conn, timeout time.Duration) *ConnSource {
	dr := &deadlineReader{ctx: ctx, conn: conn, timeout: timeout}
	stop := context.AfterFunc(ctx, func() {
		// a deadline in the past wakes up the blocked read
		conn.SetReadDeadline(time.Unix(1, 0))
	})
	return &ConnSource{Reader: bufio.NewReader(dr), stop: stop}
}

// Close releases the cancellation hook, it does not close the connection
func (s *ConnSource) Close() error {
	s.stop()
	return nil
}

type deadlineReader struct {
	ctx     context.Context
	conn    net.Conn
	timeout time.Duration
}

func (r *deadlineReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	if r.timeout > 0 {
		if err := r.conn.SetReadDeadline(time.Now().Add(r.timeout)); err != nil {
			return 0, err
		}
		// the hook may have fired between the check above and the new deadline
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}
	}
	n, err := r.conn.Read(p)
	if err != nil && r.ctx.Err() != nil {
		return n, r.ctx.Err()
	}
	return n, err
}
