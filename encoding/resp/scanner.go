package resp

import "io"

// Scanner presents a Decoder as a sequence of values.
// The sequence ends when the stream ends between two values or on the first error,
// it can not be restarted.
//
//	s := resp.NewScanner(resp.NewDecoder(src))
//	for s.Scan() {
//		handle(s.Value())
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type Scanner struct {
	dec  *Decoder
	val  Value
	err  error
	done bool
}

// NewScanner creates a Scanner reading from dec
func NewScanner(dec *Decoder) *Scanner {
	return &Scanner{dec: dec}
}

// Scan advances to the next value, it returns false when there are no more values
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	v, err := s.dec.Next()
	if err != nil {
		s.val = nil
		s.done = true
		if err != io.EOF {
			s.err = err
		}
		return false
	}
	s.val = v
	return true
}

// Value returns the value decoded by the last call to Scan
func (s *Scanner) Value() Value {
	return s.val
}

// Err returns the error that stopped the scanner, nil if the stream ended cleanly
func (s *Scanner) Err() error {
	return s.err
}
