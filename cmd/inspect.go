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
	"io"
	"os"

	"github.com/bgallie/enigma/cryptors/bank"
	"github.com/bgallie/enigma/cryptors/password"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [passphrase]",
	Short: "Describe a rotor bank",
	Long: `Print a YAML description of the rotor bank.  When a passphrase is given the
rotor offsets and steps it selects are listed as well.`,
	Run: func(cmd *cobra.Command, args []string) {
		b, err := bank.Load(getBankFileName())
		cobra.CheckErr(err)
		cobra.CheckErr(inspect(os.Stdout, b, args))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type rotorSummary struct {
	Offset int `yaml:"offset"`
	Step   int `yaml:"step"`
}

type bankSummary struct {
	Alphabet string         `yaml:"alphabet"`
	Symbols  int            `yaml:"symbols"`
	Rotors   int            `yaml:"rotors"`
	Base64   bool           `yaml:"base64"`
	Keyed    []rotorSummary `yaml:"keyed,omitempty"`
}

func summarize(b *bank.Bank, args []string) (bankSummary, error) {
	s := bankSummary{
		Alphabet: b.Alphabet.String(),
		Symbols:  b.Alphabet.Len(),
		Rotors:   len(b.Rotors),
		Base64:   checkFraming(b.Alphabet) == nil,
	}
	if len(args) == 0 {
		return s, nil
	}
	pw, err := password.New(getSecret(args), b.Alphabet)
	if err != nil {
		return s, err
	}
	rotors, err := b.Build(pw)
	if err != nil {
		return s, err
	}
	for _, r := range rotors {
		s.Keyed = append(s.Keyed, rotorSummary{Offset: r.Offset(), Step: r.Step()})
	}
	return s, nil
}

func inspect(w io.Writer, b *bank.Bank, args []string) error {
	s, err := summarize(b, args)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
