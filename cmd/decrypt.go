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
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bgallie/enigma/enigma"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [passphrase]",
	Short: "Decrypt an enigma encrypted file.",
	Long:  `Decrypt a file encrypted by the rotor machine built from the rotor bank.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:        "decode [passphrase]",
	Short:      "Decode an enigma encoded file.",
	Long:       `[DEPRECATED] Decode a file encoded by the rotor machine built from the rotor bank.`,
	Deprecated: "use \"decrypt\" instead.",
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(decodeCmd)
}

func decrypt(args []string) {
	m := initMachine(args)
	fin, fout := getInputAndOutputFiles(false)
	defer fout.Close()
	h, body, err := readPreamble(bufio.NewReader(fin))
	cobra.CheckErr(err)
	if len(outputFileName) == 0 && len(h.fileName) > 0 {
		fout, err = os.Create(h.fileName)
		cobra.CheckErr(err)
		defer fout.Close()
	}
	chunk, workers := streamConfig()
	logger.Debug("decrypting", "lines", h.lines, "compression", h.compression, "file", h.fileName)
	cobra.CheckErr(decryptStream(m, body, fout, h, chunk, workers))
}

// readPreamble reads the PEM block or the header line in front of the cipher
// text and returns the header with a reader over the cipher text.
func readPreamble(bRdr *bufio.Reader) (header, io.Reader, error) {
	var h header
	b, err := bRdr.Peek(5)
	if err != nil && err != io.EOF {
		return h, nil, err
	}
	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		fal, exists := blck.Headers["ApiLevel"]
		if !exists {
			fal = "-1"
		}
		h.apiLevel, _ = strconv.Atoi(fal)
		h.fileName = blck.Headers["FileName"]
		h.compression = blck.Headers["Compression"] == "true"
		if err = checkApiLevel(h.apiLevel); err != nil {
			return h, nil, err
		}
		return h, pRdr, nil
	}

	line, err := bRdr.ReadString('\n')
	if err != nil {
		return h, nil, fmt.Errorf("reading the header line: %w", err)
	}
	if h, err = parseHeader(line); err != nil {
		return h, nil, err
	}
	if err = checkApiLevel(h.apiLevel); err != nil {
		return h, nil, err
	}
	if h.lines {
		return h, lines.CombineLines(bRdr), nil
	}
	return h, bRdr, nil
}

func checkApiLevel(fileApiLevel int) error {
	if fileApiLevel != enigmaApiLevel {
		return fmt.Errorf("API Level mismatch. FileApiLevel: %d, EnigmaApiLevel: %d", fileApiLevel, enigmaApiLevel)
	}
	return nil
}

// decryptStream resets the machine, decrypts the cipher text from body and
// writes the recovered bytes to fout.
func decryptStream(m *enigma.Machine, body io.Reader, fout io.Writer, h header, chunk, workers int) error {
	m.Reset()
	plain := fromBase64(cipherHelper(m, body, chunk, workers))
	var err error
	if h.compression {
		_, err = io.Copy(fout, flate.FromFlate(plain))
	} else {
		_, err = io.Copy(fout, plain)
	}
	return err
}
