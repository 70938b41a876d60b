package enigma

import (
	"bufio"
	"fmt"
	"io"
)

// EncryptReader returns a reader producing the encryption of everything read
// from rdr.  Unlike Encrypt a stream is not atomic: when a symbol fails, the
// symbols before it have already been delivered and the reader returns the
// error.  The machine must not be used until the returned reader is drained.
func (m *Machine) EncryptReader(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		rWrtr.CloseWithError(m.copyTransformed(rWrtr, rdr))
	}()
	return rRdr
}

// DecryptReader resets the rotors now and returns EncryptReader(rdr).
func (m *Machine) DecryptReader(rdr io.Reader) *io.PipeReader {
	m.Reset()
	return m.EncryptReader(rdr)
}

func (m *Machine) copyTransformed(w io.Writer, rdr io.Reader) error {
	bRdr := bufio.NewReader(rdr)
	bWrtr := bufio.NewWriter(w)
	for cnt := 0; ; cnt++ {
		r, _, err := bRdr.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		c, err := m.transform(r)
		if err != nil {
			bWrtr.Flush()
			return fmt.Errorf("symbol %d: %w", cnt, err)
		}
		if _, err = bWrtr.WriteRune(c); err != nil {
			return err
		}
	}
	return bWrtr.Flush()
}
