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
	"fmt"
	"io"
	"strconv"

	"github.com/bgallie/enigma/enigma"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
)

var (
	usePem      bool
	useRaw      bool
	compression bool
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [passphrase]",
	Short: "Encrypt plaintext using the rotor bank",
	Long: `Encrypt plaintext using the rotor machine built from the rotor bank.
The input is framed as base64 before it enters the machine, so any file can be encrypted.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:        "encode [passphrase]",
	Short:      "Encode plaintext using the rotor bank",
	Long:       `[DEPRECATED] Encode plaintext using the rotor machine built from the rotor bank.`,
	Deprecated: "use \"encrypt\" instead.",
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(encodeCmd)
	for _, c := range []*cobra.Command{encryptCmd, encodeCmd} {
		c.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
		c.Flags().BoolVarP(&useRaw, "raw", "r", false, "do not split the cipher text into lines")
		c.Flags().BoolVarP(&compression, "compress", "c", false, "compress input file using flate")
	}
}

func encrypt(args []string) {
	m := initMachine(args)
	fin, fout := getInputAndOutputFiles(true)
	defer fout.Close()
	h := header{
		apiLevel:    enigmaApiLevel,
		lines:       !useRaw,
		compression: compression,
	}
	if len(inputFileName) > 0 && inputFileName != "-" {
		h.fileName = inputFileName
	}
	chunk, workers := streamConfig()
	logger.Debug("encrypting", "pem", usePem, "lines", h.lines, "compression", compression,
		"chunk", chunk, "workers", workers)
	cobra.CheckErr(encryptStream(m, fin, fout, h, usePem, chunk, workers))
}

// encryptStream frames the plaintext from fin as base64 (after flate when
// h.compression is set), encrypts it and writes it to fout behind either a
// header line or a PEM block.
func encryptStream(m *enigma.Machine, fin io.Reader, fout io.Writer, h header, asPem bool, chunk, workers int) error {
	var src io.Reader = fin
	if h.compression {
		src = flate.ToFlate(fin)
	}
	encIn := cipherHelper(m, toBase64(src), chunk, workers)

	var err error
	if asPem {
		var blck pem.Block
		blck.Type = pemType
		blck.Headers = make(map[string]string)
		blck.Headers["ApiLevel"] = strconv.Itoa(h.apiLevel)
		if len(h.fileName) > 0 {
			blck.Headers["FileName"] = h.fileName
		}
		blck.Headers["Compression"] = fmt.Sprintf("%v", h.compression)
		blck.Headers["Rotors"] = strconv.Itoa(m.Len())
		_, err = io.Copy(fout, pem.ToPem(encIn, blck))
		return err
	}

	if _, err = io.WriteString(fout, h.String()); err != nil {
		return err
	}
	if h.lines {
		_, err = io.Copy(fout, lines.SplitToLines(encIn))
	} else {
		_, err = io.Copy(fout, encIn)
	}
	return err
}
