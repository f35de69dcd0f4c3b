package typing

// Key names shared with keyboard backends.
const (
	KeyShift     = "shift"
	KeyEnter     = "enter"
	KeyBackspace = "backspace"
	KeyEscape    = "escape"
	KeySpace     = "space"
	KeyTab       = "tab"
)

// Keyboard is the keystroke injection backend a session drives. A session
// assumes exclusive use of it until Run returns.
type Keyboard interface {
	Press(key string) error
	Release(key string) error
	Write(r rune) error
	IsPressed(key string) bool
}

// shiftCombos lists the US layout symbols that need shift plus a base key.
var shiftCombos = map[rune]string{
	'!': "1", '@': "2", '#': "3", '$': "4", '%': "5",
	'^': "6", '&': "7", '*': "8", '(': "9", ')': "0",
	'_': "-", '+': "=", '{': "[", '}': "]", '|': "\\",
	':': ";", '"': "'", '<': ",", '>': ".", '?': "/",
	'~': "`",
}

var shiftedByBase = func() map[string]rune {
	out := make(map[string]rune, len(shiftCombos))
	for r, base := range shiftCombos {
		out[base] = r
	}
	return out
}()

// Encode returns the keys to hold, in press order, to produce r. It reports
// false when r should be written directly.
func Encode(r rune) ([]string, bool) {
	base, ok := shiftCombos[r]
	if !ok {
		return nil, false
	}
	return []string{KeyShift, base}, true
}

// ReleaseOrder returns keys in the order they must be released.
func ReleaseOrder(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}

// ShiftedRune maps a base key back to the symbol it yields with shift held.
func ShiftedRune(base string) (rune, bool) {
	r, ok := shiftedByBase[base]
	return r, ok
}

// SpecialRunes returns every rune Encode knows about.
func SpecialRunes() []rune {
	out := make([]rune, 0, len(shiftCombos))
	for r := range shiftCombos {
		out = append(out, r)
	}
	return out
}
