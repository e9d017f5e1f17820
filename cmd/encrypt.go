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
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"

	"github.com/jgardner/enigma/keygen"
	"github.com/jgardner/enigma/machine"
)

var (
	useASCII85   bool
	usePem       bool
	compression  bool
	rotorCount   int
	wg           sync.WaitGroup
	bytesWritten int64
	headerLine   string
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [passphrase]",
	Short: "Encrypt a byte stream on a passphrase derived machine",
	Long: `Encrypt data using a 256 point rotor machine derived from a passphrase.
The fast rotor is first advanced by the stored message count so machine
states are not reused across messages sharing a passphrase.  The cipher is
the historical rotor construction and is offered for study; do not trust
it with secrets that matter.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	encryptCmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress input file using flate")
	encryptCmd.Flags().IntVarP(&rotorCount, "rotorCount", "n", keygen.DefaultRotorCount, "number of derived rotors")
}

func encrypt(args []string) {
	secret := initSecret(args)
	mach, err := keygen.Machine(secret, rotorCount)
	cobra.CheckErr(err)

	// Read in the map of message counts and advance the machine to the
	// first unused state for this passphrase.
	mKey = keygen.Fingerprint(secret)
	cMap = readCounterFile(make(map[string]int64))
	iCnt := cMap[mKey]
	mach.Advance(int(iCnt))

	fin, fout := getInputAndOutputFiles(true)
	defer fout.Close()

	var encIn io.Reader = fin
	if compression {
		encIn = flate.ToFlate(fin)
	}
	encRdr := cipherHelper(encIn, mach)

	if usePem {
		var blck pem.Block
		blck.Headers = make(map[string]string)
		blck.Type = "ENIGMA ENCRYPTED MESSAGE"
		blck.Headers["Counter"] = strconv.FormatInt(iCnt, 10)
		blck.Headers["RotorCount"] = strconv.Itoa(rotorCount)
		blck.Headers["Compression"] = fmt.Sprintf("%v", compression)
		_, err = io.Copy(fout, pem.ToPem(encRdr, blck))
	} else {
		enc := "b"
		if useASCII85 {
			enc = "a"
		}
		headerLine = fmt.Sprintf("+ENIGMA|%d|%d|%v|%s|\n", iCnt, rotorCount, compression, enc)
		_, err = fout.WriteString(headerLine)
		checkError(err)
		if useASCII85 {
			_, err = io.Copy(fout, lines.SplitToLines(ascii85.ToASCII85(encRdr)))
		} else {
			_, err = io.Copy(fout, encRdr)
		}
	}
	checkError(err)
	wg.Wait()

	// Each byte is one key press, so the next message starts where this
	// one left off.
	cMap[mKey] = iCnt + bytesWritten
	checkError(writeCounterFile(cMap))
}

// cipherHelper feeds rdr through the machine one byte per key press.  The
// derived machines are reciprocal, so the same helper serves both the
// encrypting and decrypting directions.
func cipherHelper(rdr io.Reader, mach *machine.Machine) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	bytesWritten = 0
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer rWrtr.Close()
		b := make([]byte, 2048)
		var err error

		for err == nil {
			var cnt int
			cnt, err = rdr.Read(b)
			if cnt > 0 {
				for i := 0; i < cnt; i++ {
					b[i] = byte(mach.EncodeNext(int(b[i])))
				}
				bytesWritten += int64(cnt)
				_, werr := rWrtr.Write(b[:cnt])
				checkError(werr)
			}
			checkError(err)
		}
	}()

	return rRdr
}
