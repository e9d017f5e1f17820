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
	"bufio"
	"io"

	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jgardner/enigma/machine"
)

// decipherCmd represents the decipher command
var decipherCmd = &cobra.Command{
	Use:   "decipher",
	Short: "Decipher a letter message enciphered with this machine",
	Long: `Decipher a message produced by the encipher command.  PEM input carries
the wheel order, reflector and message key in its headers; otherwise they
must be supplied the same way they were when enciphering.`,
	Run: func(cmd *cobra.Command, args []string) {
		decipher()
	},
}

func init() {
	rootCmd.AddCommand(decipherCmd)
}

func decipher() {
	fin, fout := getInputAndOutputFiles(false)
	defer fout.Close()
	bRdr := bufio.NewReader(fin)

	var mach *machine.Machine
	var src io.Reader = bRdr
	b, perr := bRdr.Peek(5)
	if perr == nil && string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		if v, ok := blck.Headers["Rotors"]; ok {
			viper.Set("rotors", v)
		}
		if v, ok := blck.Headers["Reflector"]; ok {
			viper.Set("reflector", v)
		}
		if v, ok := blck.Headers["Positions"]; ok {
			viper.Set("positions", v)
		}
		mach = buildLetterMachine(false)
		src = pRdr
	} else {
		mach = buildLetterMachine(true)
	}

	plnRdr := letterHelper(src, mach, 0)
	_, err := io.Copy(fout, plnRdr)
	checkError(err)
	wg.Wait()
}
