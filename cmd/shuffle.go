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
	"time"

	"github.com/spf13/cobra"

	"github.com/jgardner/enigma/machine"
)

var itemCount int

// shuffleCmd represents the shuffle command
var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Shuffle a number sequence using the machine as a generator",
	Long: `Seed the machine from the wall clock and use it as a bounded
pseudo-random generator to shuffle a small number sequence.  A demonstration
more than a tool: the rotor stepping sequence can stand in anywhere a
deterministic value stream is wanted.`,
	Run: func(cmd *cobra.Command, args []string) {
		shuffle()
	},
}

func init() {
	rootCmd.AddCommand(shuffleCmd)
	shuffleCmd.Flags().IntVarP(&itemCount, "items", "m", 10, "number of items to shuffle")
}

func shuffle() {
	mach := buildLetterMachine(false)
	seed := time.Now().UnixNano()
	mach.Advance(int(seed))
	gen, err := machine.NewGenerator(mach, int(seed%int64(mach.Base())))
	cobra.CheckErr(err)

	items := make([]int, itemCount)
	for i := range items {
		items[i] = i + 1
	}
	fmt.Println(items)
	gen.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	fmt.Println(items)
}
