package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"ztc/internal/opcode"
)

// HexDump writes data as "0x41, 0x42, 0xFF" followed by a newline.
// A separator follows every byte except the terminator, so a stream that
// ends with opcode.Terminator has no trailing comma.
func HexDump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for _, b := range data {
		fmt.Fprintf(bw, "0x%02X", b)
		if b != opcode.Terminator {
			bw.WriteString(", ")
		}
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
