package streamdump

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Write writes a textual dump of s to w, followed by statistics about the
// record lengths if stats is set
func Write(w io.Writer, s *Stream, stats bool) error {
	if s == nil {
		return errors.New("nothing to write")
	}

	if _, err := fmt.Fprintf(w, `Format    = %v
Encoding  = %v
Records   = %v
Padding   = %v

`, s.Format, s.Encoding, len(s.Records), s.Padding); err != nil {
		return err
	}

	for _, r := range s.Records {
		if _, err := fmt.Fprintf(w, "\t[%v] (%v bytes) %q\n", r.Offset, r.Length, r.Value); err != nil {
			return err
		}
	}

	if !stats {
		return nil
	}

	h := s.Lengths
	if h == nil || h.TotalCount() == 0 {
		_, err := fmt.Fprintf(w, "\nLengths: count=0\n")
		return err
	}

	_, err := fmt.Fprintf(w, "\nLengths: count=%d min=%d max=%d mean=%.2f p50=%d p99=%d\n",
		h.TotalCount(), h.Min(), h.Max(), h.Mean(), h.ValueAtQuantile(50), h.ValueAtQuantile(99))
	return err
}
