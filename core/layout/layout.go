// Package layout maps electrode tags to MEA grid coordinates and back.
// The four array corners carry the eight auxiliary analog inputs.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

var colForLetter = map[byte]int{
	'a': 0, 'b': 1, 'c': 2, 'd': 3, 'e': 4, 'f': 5,
	'g': 6, 'h': 7, 'j': 8, 'k': 9, 'l': 10, 'm': 11,
}

var letterForCol = map[int]byte{
	0: 'a', 1: 'b', 2: 'c', 3: 'd', 4: 'e', 5: 'f',
	6: 'g', 7: 'h', 8: 'j', 9: 'k', 10: 'l', 11: 'm',
}

var analogCoords = map[byte][2]int{
	'1': {0, 0}, '2': {1, 0}, '3': {10, 0}, '4': {11, 0},
	'5': {0, 11}, '6': {1, 11}, '7': {10, 11}, '8': {11, 11},
}

var analogForTag = map[string]string{
	"a1": "analog1", "b1": "analog2", "l1": "analog3", "m1": "analog4",
	"a12": "analog5", "b12": "analog6", "l12": "analog7", "m12": "analog8",
}

// CoordinatesForElectrode returns the grid coordinates for an electrode
// label such as "a8" or "C6" (case-insensitive).
func CoordinatesForElectrode(tag string) (int, int, error) {
	tag = strings.ToLower(tag)
	if strings.HasPrefix(tag, "analog") && len(tag) == len("analog")+1 {
		if c, ok := analogCoords[tag[len(tag)-1]]; ok {
			return c[0], c[1], nil
		}
		return 0, 0, fmt.Errorf("unknown analog channel %q", tag)
	}
	if len(tag) < 2 {
		return 0, 0, fmt.Errorf("malformed electrode tag %q", tag)
	}
	col, ok := colForLetter[tag[0]]
	if !ok {
		return 0, 0, fmt.Errorf("unknown electrode column %q", tag)
	}
	row, err := strconv.Atoi(tag[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed electrode tag %q", tag)
	}
	return col, row - 1, nil
}

// TagForElectrode returns the electrode label for grid coordinates; corner
// positions map to their analog channel names.
func TagForElectrode(x, y int) (string, error) {
	letter, ok := letterForCol[x]
	if !ok {
		return "", fmt.Errorf("column %d out of range", x)
	}
	tag := string(letter) + strconv.Itoa(y+1)
	if analog, ok := analogForTag[tag]; ok {
		return analog, nil
	}
	return tag, nil
}
