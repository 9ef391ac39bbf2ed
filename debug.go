package jpeg

import (
	"fmt"
	"io"
)

// Dump writes a plain-text, one-line-per-segment rendering of result's
// marker structure to w, in emission order. It is a diagnostic aid only
// (wired up behind the CLI's -v flag); nothing in the package reads this
// output back.
func Dump(w io.Writer, result *Result) error {
	for _, seg := range result.segments {
		var err error
		if seg.length == 0 {
			_, err = fmt.Fprintf(w, "%-5s marker=0x%04x\n", seg.name, seg.marker)
		} else {
			_, err = fmt.Fprintf(w, "%-5s marker=0x%04x length=%d\n", seg.name, seg.marker, seg.length)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	_, err := fmt.Fprintf(w, "total %d bytes\n", len(result.Bytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
