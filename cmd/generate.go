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
	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/alphabet"
	"github.com/bgallie/enigma/cryptors/bank"
	"github.com/spf13/cobra"
)

const defaultBankFile = "new.rotors"

var (
	rotorCount   int
	bankAlphabet string
	bankSeed     uint64
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random rotor bank",
	Long: `Generate a rotor bank file holding the base alphabet followed by randomly shuffled rotors.
The bank is written to the output file (default "new.rotors").`,
	Run: func(cmd *cobra.Command, args []string) {
		generate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&rotorCount, "rotor-count", "n", cryptors.DefaultRotorCount, "number of rotors to generate")
	generateCmd.Flags().StringVarP(&bankAlphabet, "alphabet", "a", cryptors.Base64Alphabet, "the base alphabet of the bank")
	generateCmd.Flags().Uint64VarP(&bankSeed, "seed", "s", 0, "seed for a reproducible bank (0 draws a random one)")
}

func generate() {
	chars, err := alphabet.NewStrict(bankAlphabet)
	cobra.CheckErr(err)
	b, err := bank.Generate(chars, rotorCount, bank.NewRand(bankSeed))
	cobra.CheckErr(err)
	name := outputFileName
	if len(name) == 0 {
		name = defaultBankFile
	}
	cobra.CheckErr(b.Save(name))
	logger.Debug("rotor bank written", "file", name, "rotors", len(b.Rotors), "symbols", chars.Len())
}
