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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"

	"github.com/jgardner/enigma/keygen"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [passphrase]",
	Short: "Decrypt a byte stream encrypted with this machine",
	Long: `Decrypt data produced by the encrypt command.  The message count, rotor
count and encodings are read from the PEM headers or the header line, so
only the passphrase is needed.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}

func decrypt(args []string) {
	fin, fout := getInputAndOutputFiles(false)
	defer fout.Close()
	bRdr := bufio.NewReader(fin)

	var iCnt int64
	rCount := keygen.DefaultRotorCount
	var src io.Reader
	b, perr := bRdr.Peek(5)
	if perr == nil && string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		if v, ok := blck.Headers["Counter"]; ok {
			iCnt, _ = strconv.ParseInt(v, 10, 64)
		}
		if v, ok := blck.Headers["RotorCount"]; ok {
			rCount, _ = strconv.Atoi(v)
		}
		if v, ok := blck.Headers["Compression"]; ok {
			compression = v == "true"
		}
		src = pRdr
	} else {
		line, err := bRdr.ReadString('\n')
		checkError(err)
		fields := strings.Split(strings.TrimSuffix(line, "\n"), "|")
		if len(fields) < 5 || fields[0] != "+ENIGMA" {
			cobra.CheckErr(fmt.Sprintf("unrecognized input header: [%s]", line))
		}
		iCnt, _ = strconv.ParseInt(fields[1], 10, 64)
		rCount, _ = strconv.Atoi(fields[2])
		compression = fields[3] == "true"
		useASCII85 = fields[4] == "a"
		if useASCII85 {
			src = ascii85.FromASCII85(lines.CombineLines(bRdr))
		} else {
			src = bRdr
		}
	}

	secret := initSecret(args)
	mach, err := keygen.Machine(secret, rCount)
	cobra.CheckErr(err)
	mach.Advance(int(iCnt))

	plnRdr := cipherHelper(src, mach)
	var outRdr io.Reader = plnRdr
	if compression {
		outRdr = flate.FromFlate(plnRdr)
	}
	_, cpErr := io.Copy(fout, outRdr)
	checkError(cpErr)
	wg.Wait()
}
