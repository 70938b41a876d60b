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
	"log/slog"
	"os"
	"strings"

	"github.com/bgallie/enigma/enigma"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spf13/viper"
)

var (
	cfgFile        string
	bankFileName   string
	inputFileName  string
	outputFileName string
	verbose        bool
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

const (
	defaultChunkSize = 4096
	enigmaSuffix     = ".enigma"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "enigma",
	Short:   "A rotor machine for base64 text",
	Long:    `enigma encrypts/decrypts files with a chain of keyed rotors and a reflector loaded from a rotor bank file.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	rootCmd.PersistentFlags().StringVarP(&bankFileName, "bank", "b", "", "the rotor bank file to build the machine from.")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the plaintext file to encrypt/decrypt.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted plaintext.")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log what the machine is doing to stderr")
	cobra.CheckErr(viper.BindPFlag("bank", rootCmd.PersistentFlags().Lookup("bank")))
	viper.SetDefault("chunk", defaultChunkSize)
	viper.SetDefault("workers", 1)
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\n  commit: %s (%s, %s)\n  summary: %s\n  built: %s\n",
		GitCommit, GitBranch, GitState, GitSummary, BuildDate))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".enigma")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// getSecret obtains the passphrase from either:
//  1. Arguments from the entered command line (least secure - not recommended)
//  2. The 'ENIGMA_SECRET' environment variable (less secure)
//  3. User input from the terminal (most secure)
func getSecret(args []string) string {
	var secret string
	if len(args) == 0 {
		if viper.IsSet("ENIGMA_SECRET") {
			secret = viper.GetString("ENIGMA_SECRET")
		} else {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprintf(os.Stderr, "Enter the passphrase: ")
				byteSecret, err := term.ReadPassword(int(os.Stdin.Fd()))
				cobra.CheckErr(err)
				fmt.Fprintln(os.Stderr, "")
				secret = string(byteSecret)
			}
		}
	} else {
		secret = strings.Join(args, " ")
	}

	if len(secret) == 0 {
		cobra.CheckErr("You must supply a password.")
	}
	return secret
}

// getBankFileName returns the rotor bank named by the flag or the config.
func getBankFileName() string {
	name := viper.GetString("bank")
	if len(name) == 0 {
		cobra.CheckErr("You must name a rotor bank (--bank or 'bank' in the config file).")
	}
	return name
}

// initMachine builds the machine from the configured rotor bank and the
// passphrase.
func initMachine(args []string) *enigma.Machine {
	name := getBankFileName()
	m, err := enigma.Open(name, getSecret(args))
	cobra.CheckErr(err)
	cobra.CheckErr(checkFraming(m.Alphabet()))
	logger.Debug("machine ready", "bank", name, "rotors", m.Len(), "symbols", m.Alphabet().Len())
	return m
}

// streamConfig returns the chunk size and worker count from the config.
func streamConfig() (int, int) {
	chunk := viper.GetInt("chunk")
	if chunk < 1 {
		chunk = defaultChunkSize
	}
	return chunk, viper.GetInt("workers")
}

// getInputAndOutputFiles will return the input and output files to use while
// encrypting/decrypting data.  If input and/or output files names were given,
// then those files will be opened.  Otherwise stdin and stdout are used.
func getInputAndOutputFiles(encode bool) (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 {
		if inputFileName == "-" {
			fin = os.Stdin
		} else {
			fin, err = os.Open(inputFileName)
			cobra.CheckErr(err)
		}
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 {
		if outputFileName == "-" {
			fout = os.Stdout
		} else {
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else if inputFileName == "-" {
		fout = os.Stdout
	} else if encode {
		outputFileName = inputFileName + enigmaSuffix
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		if strings.HasSuffix(inputFileName, enigmaSuffix) {
			outputFileName = strings.TrimSuffix(inputFileName, enigmaSuffix)
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		} else {
			fout = os.Stdout
		}
	}
	logger.Debug("files", "input", fin.Name(), "output", fout.Name())
	return fin, fout
}
