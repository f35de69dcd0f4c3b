package keyboard

import (
	"strings"
	"unicode/utf8"

	"github.com/bioooz/typoer/internal/typing"
)

// KeyInterrupt is reported for Ctrl-C read from a raw terminal.
const KeyInterrupt = "ctrl+c"

var keyAliases = map[string]string{
	"esc":    typing.KeyEscape,
	"return": typing.KeyEnter,
	"bksp":   typing.KeyBackspace,
	"bs":     typing.KeyBackspace,
}

// NormalizeKey lowercases named keys and resolves common aliases. Single
// characters are returned unchanged.
func NormalizeKey(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= 1 {
		return name
	}
	name = strings.ToLower(name)
	if alias, ok := keyAliases[name]; ok {
		return alias
	}
	return name
}

// csiKeys maps the bytes after "ESC [" to key names.
var csiKeys = map[string]string{
	"A": "up", "B": "down", "C": "right", "D": "left",
	"H": "home", "F": "end",
	"1~": "home", "4~": "end", "2~": "insert", "3~": "delete",
	"5~": "pageup", "6~": "pagedown",
	"11~": "f1", "12~": "f2", "13~": "f3", "14~": "f4",
	"15~": "f5", "17~": "f6", "18~": "f7", "19~": "f8",
	"20~": "f9", "21~": "f10", "23~": "f11", "24~": "f12",
	// Linux console
	"[A": "f1", "[B": "f2", "[C": "f3", "[D": "f4", "[E": "f5",
}

// ss3Keys maps the byte after "ESC O" to key names.
var ss3Keys = map[byte]string{
	'P': "f1", 'Q': "f2", 'R': "f3", 'S': "f4",
	'A': "up", 'B': "down", 'C': "right", 'D': "left",
	'H': "home", 'F': "end",
}

// decodeKeys turns a chunk of raw terminal input into key names. A lone ESC
// at the end of the chunk is the escape key; unknown sequences are dropped.
func decodeKeys(data []byte) []string {
	var keys []string
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b == 0x03:
			keys = append(keys, KeyInterrupt)
			i++
		case b == '\r' || b == '\n':
			keys = append(keys, typing.KeyEnter)
			i++
		case b == 0x7f || b == 0x08:
			keys = append(keys, typing.KeyBackspace)
			i++
		case b == '\t':
			keys = append(keys, typing.KeyTab)
			i++
		case b == ' ':
			keys = append(keys, typing.KeySpace)
			i++
		case b == 0x1b:
			key, n := decodeEscape(data[i:])
			if key != "" {
				keys = append(keys, key)
			}
			i += n
		case b > 0x20 && b < 0x7f:
			keys = append(keys, string(rune(b)))
			i++
		case b >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError {
				keys = append(keys, string(r))
			}
			i += size
		default:
			i++
		}
	}
	return keys
}

// decodeEscape decodes one sequence starting with ESC and returns the key
// and the number of bytes consumed.
func decodeEscape(data []byte) (string, int) {
	if len(data) < 2 {
		return typing.KeyEscape, 1
	}
	switch data[1] {
	case '[':
		for j := 2; j < len(data); j++ {
			c := data[j]
			// A "[" right after the CSI introducer starts a console function key.
			if j == 2 && c == '[' {
				continue
			}
			if c >= 0x40 && c <= 0x7e {
				return csiKeys[string(data[2:j+1])], j + 1
			}
		}
		return "", len(data)
	case 'O':
		if len(data) < 3 {
			return "", len(data)
		}
		return ss3Keys[data[2]], 3
	default:
		// Alt chords and doubled ESC still count as escape.
		return typing.KeyEscape, 1
	}
}
