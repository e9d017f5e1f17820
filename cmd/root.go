/*
Copyright © 2022 The enigma authors

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
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/jgardner/enigma/machine"
	"github.com/jgardner/enigma/machine/rotor"
	"github.com/jgardner/enigma/wiring"
)

var (
	cfgFile        string
	rotorNames     string
	reflectorName  string
	startPositions string
	inputFileName  string
	outputFileName string
	cntrFileName   string
	cMap           map[string]int64
	mKey           string
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	enigmaCountFile = ".enigma"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "An Enigma rotor machine simulator",
	Long: `enigma simulates the classic rotor cipher machine.  It enciphers letter
messages on the historical wheels, encrypts byte streams on wide machines
derived from a passphrase, and doubles as a deterministic pseudo-random
generator.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rotorNames, "rotors", "r", "III,II,I", "comma separated wheel names, fast rotor first")
	rootCmd.PersistentFlags().StringVarP(&reflectorName, "reflector", "u", "B", "reflector name (B or C)")
	rootCmd.PersistentFlags().StringVarP(&startPositions, "positions", "k", "", "rotor start positions (message key), e.g. AAA")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to read from ('-' for stdin).")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file to write to.")
	cobra.CheckErr(viper.BindPFlag("rotors", rootCmd.PersistentFlags().Lookup("rotors")))
	cobra.CheckErr(viper.BindPFlag("reflector", rootCmd.PersistentFlags().Lookup("reflector")))
	cobra.CheckErr(viper.BindPFlag("positions", rootCmd.PersistentFlags().Lookup("positions")))
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

	// Get the message counter file name based on the current user.
	u, err := user.Current()
	cobra.CheckErr(err)
	cntrFileName = fmt.Sprintf("%s%c%s", u.HomeDir, os.PathSeparator, enigmaCountFile)
}

// buildLetterMachine assembles a 26 point machine from the configured wheel
// order and reflector.  If no message key was given and promptForKey is set,
// the key is read from the terminal without echo.
func buildLetterMachine(promptForKey bool) *machine.Machine {
	names := strings.Split(viper.GetString("rotors"), ",")
	rotors := make([]*rotor.Rotor, 0, len(names))
	for _, name := range names {
		r, err := wiring.Rotor(name)
		cobra.CheckErr(err)
		rotors = append(rotors, r)
	}
	refl, err := wiring.Reflector(viper.GetString("reflector"))
	cobra.CheckErr(err)
	mach, err := machine.New(rotors, refl)
	cobra.CheckErr(err)

	key := viper.GetString("positions")
	if key == "" && promptForKey && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Enter the rotor start positions: ")
		byteKey, err := term.ReadPassword(int(os.Stdin.Fd()))
		cobra.CheckErr(err)
		fmt.Fprintln(os.Stderr, "")
		key = string(byteKey)
	}
	if key != "" {
		pos, err := parsePositions(key, mach.RotorCount())
		cobra.CheckErr(err)
		cobra.CheckErr(mach.SetPositions(pos))
	}
	return mach
}

// initSecret obtains the passphrase used to derive the wide machine from either:
// 1. User input from the terminal (most secure)
// 2. The 'ENIGMA_SECRET' environment variable (less secure)
// 3. Arguments from the entered command line (least secure - not recommended)
func initSecret(args []string) []byte {
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
		cobra.CheckErr("You must supply a passphrase.")
	}
	return []byte(secret)
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	enciphering/deciphering data.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
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
		outputFileName = inputFileName + ".enigma"
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		if strings.HasSuffix(inputFileName, ".enigma") {
			outputFileName = inputFileName[:len(inputFileName)-7]
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		} else {
			fout = os.Stdout
		}
	}
	return fin, fout
}

// checkError checks for errors that are not io.EOF and io.ErrUnexpectedEOF
// and reports them.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}

func readCounterFile(defaultMap map[string]int64) map[string]int64 {
	f, err := os.OpenFile(cntrFileName, os.O_RDONLY, 0600)
	if err != nil {
		return defaultMap
	}

	defer f.Close()
	cmap := make(map[string]int64)
	dec := gob.NewDecoder(f)
	checkError(dec.Decode(&cmap))
	return cmap
}

func writeCounterFile(wMap map[string]int64) error {
	f, err := os.OpenFile(cntrFileName, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	defer f.Close()
	enc := gob.NewEncoder(f)
	return enc.Encode(wMap)
}
