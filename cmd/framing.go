/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/enigma/cryptors/alphabet"
	"github.com/bgallie/enigma/enigma"
)

const (
	enigmaApiLevel = 1
	headerTag      = "+ENIGMA"
	pemType        = "ENIGMA Encrypted Message"
	base64Symbols  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="
)

// header is the metadata written in front of the cipher text.
type header struct {
	apiLevel    int
	fileName    string
	lines       bool
	compression bool
}

func (h header) String() string {
	format := "r"
	if h.lines {
		format = "l"
	}
	return fmt.Sprintf("%s|%d|%s|%s|%v\n", headerTag, h.apiLevel, h.fileName, format, h.compression)
}

// parseHeader parses a header line, with or without its trailing newline.
func parseHeader(line string) (header, error) {
	var h header
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(fields) != 5 || fields[0] != headerTag {
		return h, fmt.Errorf("not an enigma header: %q", line)
	}
	if _, err := fmt.Sscanf(fields[1], "%d", &h.apiLevel); err != nil {
		return h, fmt.Errorf("bad api level %q: %w", fields[1], err)
	}
	h.fileName = fields[2]
	h.lines = fields[3] == "l"
	h.compression = fields[4] == "true"
	return h, nil
}

// checkFraming makes sure the cipher text of base64 framed data can be
// carried by the machine alphabet.
func checkFraming(a *alphabet.Alphabet) error {
	for _, r := range base64Symbols {
		if !a.Contains(r) {
			return fmt.Errorf("the rotor bank alphabet cannot carry base64 text: %q is missing", r)
		}
	}
	return nil
}

// toBase64 provides the means to frame arbitrary bytes as base64 symbols.
func toBase64(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		enc := base64.NewEncoder(base64.StdEncoding, rWrtr)
		_, err := io.Copy(enc, rdr)
		if err == nil {
			err = enc.Close()
		}
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// fromBase64 turns the base64 symbols read from rdr back into bytes.
func fromBase64(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		_, err := io.Copy(rWrtr, base64.NewDecoder(base64.StdEncoding, rdr))
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// cipherHelper passes everything read from rdr through the machine, chunk
// symbols at a time.  With more than one worker every chunk is split again
// and transformed in parallel.
func cipherHelper(m *enigma.Machine, rdr io.Reader, chunk, workers int) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		bRdr := bufio.NewReader(rdr)
		var err error
		for err == nil {
			var text string
			text, err = readSymbols(bRdr, chunk)
			if len(text) == 0 {
				break
			}
			var out string
			var err1 error
			if workers > 1 {
				out, err1 = enigma.EncryptParallel(context.Background(), m, text, max(chunk/workers, 1), workers)
			} else {
				out, err1 = m.Encrypt(text)
			}
			if err1 != nil {
				err = err1
				break
			}
			if _, err1 = io.WriteString(rWrtr, out); err1 != nil {
				err = err1
			}
		}
		if err == io.EOF {
			err = nil
		}
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// readSymbols reads up to n runes from bRdr.
func readSymbols(bRdr *bufio.Reader, n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, _, err := bRdr.ReadRune()
		if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
