package source

import "testing"

func TestCRLFNormalization(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\r\n"))
	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	if string(normalized) != "a\nb\n" {
		t.Errorf("Expected normalized content %q, got %q", "a\nb\n", normalized)
	}

	// одиночный \r не трогаем
	lone, changed := normalizeCRLF([]byte("a\rb"))
	if changed || string(lone) != "a\rb" {
		t.Errorf("lone CR must be kept, got %q (changed=%v)", lone, changed)
	}
}

func TestBOMRemoval(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}
	if string(withoutBOM) != "x\n" {
		t.Errorf("Expected %q, got %q", "x\n", withoutBOM)
	}

	short, hadBOM := removeBOM([]byte{0xEF})
	if hadBOM || len(short) != 1 {
		t.Error("short input must be returned untouched")
	}
}

func TestNormalizeNFC(t *testing.T) {
	decomposed := []byte("(Cafe\u0301,B)")
	content, flags := NormalizeNFC(decomposed)
	if string(content) != "(Caf\u00e9,B)" {
		t.Errorf("expected composed form, got %q", content)
	}
	if flags&FileNormalizedNFC == 0 {
		t.Error("Expected FileNormalizedNFC flag")
	}

	plain, flags := NormalizeNFC([]byte("(A,B)"))
	if string(plain) != "(A,B)" || flags != 0 {
		t.Errorf("ASCII input must pass through, got %q flags=%b", plain, flags)
	}
}

func TestNormalizeKeepsNames(t *testing.T) {
	for _, name := range []string{"Cafe\u0301", "\u212B", "\u2126", "\uF900"} {
		content, flags := Normalize([]byte("(" + name + ")"))
		if string(content) != "("+name+")" {
			t.Errorf("%q: name rewritten to %q", name, content)
		}
		if flags != 0 {
			t.Errorf("%q: unexpected flags %b", name, flags)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 1, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 1, End: 6}) {
		t.Errorf("Cover: got %v", got)
	}
	other := Span{File: 2, Start: 0, End: 10}
	if got := a.Cover(other); got != a {
		t.Errorf("spans from different files must not merge, got %v", got)
	}
	if got := a.AtEnd(); got.Start != 6 || got.End != 6 || !got.Empty() {
		t.Errorf("AtEnd: got %v", got)
	}
	if a.Len() != 2 {
		t.Errorf("Len: got %d", a.Len())
	}
}
