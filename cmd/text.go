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
	"strings"
)

// letterToCode maps an ASCII letter to a code point in [0, 26), folding
// case.  Anything else reports ok == false and is dropped by the letter
// pipeline, as on the physical machine.
func letterToCode(b byte) (int, bool) {
	switch {
	case b >= 'A' && b <= 'Z':
		return int(b - 'A'), true
	case b >= 'a' && b <= 'z':
		return int(b - 'a'), true
	}
	return 0, false
}

func codeToLetter(v int) byte {
	return byte('A' + v)
}

// parsePositions converts a message key such as "AAA" into rotor positions,
// fast rotor first.
func parsePositions(key string, rotorCount int) ([]int, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if len(key) != rotorCount {
		return nil, fmt.Errorf("message key %q does not name %d positions", key, rotorCount)
	}
	pos := make([]int, len(key))
	for i := 0; i < len(key); i++ {
		v, ok := letterToCode(key[i])
		if !ok {
			return nil, fmt.Errorf("message key %q contains a non-letter", key)
		}
		pos[i] = v
	}
	return pos, nil
}

// formatPositions is the inverse of parsePositions.
func formatPositions(pos []int) string {
	b := make([]byte, len(pos))
	for i, v := range pos {
		b[i] = codeToLetter(v)
	}
	return string(b)
}
