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

	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jgardner/enigma/machine"
)

var groupSize int

// encipherCmd represents the encipher command
var encipherCmd = &cobra.Command{
	Use:   "encipher",
	Short: "Encipher a letter message on the historical wheels",
	Long: `Encipher text using the classic 26 point machine.  Input is folded to
upper case and characters outside A-Z are dropped, as on the physical
machine.  The machine is reciprocal, so deciphering needs only the same
wheel order, reflector and message key.`,
	Run: func(cmd *cobra.Command, args []string) {
		encipher()
	},
}

func init() {
	rootCmd.AddCommand(encipherCmd)
	encipherCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	encipherCmd.Flags().IntVarP(&groupSize, "group", "g", 5, "output letters in groups of this size (0 for none)")
}

func encipher() {
	mach := buildLetterMachine(true)
	messageKey := formatPositions(mach.Positions())
	fin, fout := getInputAndOutputFiles(true)
	defer fout.Close()

	ltrRdr := letterHelper(fin, mach, groupSize)
	var err error
	if usePem {
		var blck pem.Block
		blck.Headers = make(map[string]string)
		blck.Type = "ENIGMA ENCIPHERED MESSAGE"
		blck.Headers["Rotors"] = viper.GetString("rotors")
		blck.Headers["Reflector"] = viper.GetString("reflector")
		blck.Headers["Positions"] = messageKey
		_, err = io.Copy(fout, pem.ToPem(ltrRdr, blck))
	} else {
		_, err = io.Copy(fout, lines.SplitToLines(ltrRdr))
	}
	checkError(err)
	wg.Wait()
}

// letterHelper feeds the letters of rdr through the machine one key press
// at a time and emits the substituted letters, optionally in space
// separated groups.  Deciphering uses the same helper with grouping off,
// since the spaces and line breaks of the ciphertext are dropped as
// non-letters.
func letterHelper(rdr io.Reader, mach *machine.Machine, group int) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer rWrtr.Close()
		bRdr := bufio.NewReader(rdr)
		bWrtr := bufio.NewWriter(rWrtr)
		defer bWrtr.Flush()
		emitted := 0

		for {
			b, err := bRdr.ReadByte()
			if err != nil {
				checkError(err)
				return
			}
			v, ok := letterToCode(b)
			if !ok {
				continue
			}
			if group > 0 && emitted > 0 && emitted%group == 0 {
				bWrtr.WriteByte(' ')
			}
			bWrtr.WriteByte(codeToLetter(mach.EncodeNext(v)))
			emitted++
		}
	}()

	return rRdr
}
