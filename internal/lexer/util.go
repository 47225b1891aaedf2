package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune читает руну под курсором; size == 0 на EOF.
// Невалидный UTF-8 байт возвращается как RuneError с size 1.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// isWordByte is the ASCII fast path of isWordRune.
func isWordByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// isWordRune matches a Unicode word character: letter, number or '_'.
func isWordRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isWordByte(byte(r))
	}
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isSeparator reports characters that are skipped without any note.
func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
