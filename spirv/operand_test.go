package spirv

import (
	"math/rand"
	"strings"
	"testing"
)

// encodeWords encodes ops into a fresh buffer and returns the words.
func encodeWords(ops ...Operand) []uint32 {
	b := NewWordBuffer(4)
	Encode(b, ops...)
	return b.Words()
}

func equalWords(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEncode_Operands(t *testing.T) {
	tests := []struct {
		name string
		op   Operand
		want []uint32
	}{
		{"word", Word(42), []uint32{42}},
		{"enum", Word(StorageClassOutput), []uint32{3}},
		{"pair", Pair{Low: 0x1234, High: 0xABCD}, []uint32{0xABCD1234}},
		{"int8 negative", Int8(-1), []uint32{0xFFFFFFFF}},
		{"int8 positive", Int8(5), []uint32{5}},
		{"uint8 max", Uint8(255), []uint32{0x000000FF}},
		{"int16 negative", Int16(-2), []uint32{0xFFFFFFFE}},
		{"int16 min", Int16(-32768), []uint32{0xFFFF8000}},
		{"uint16 max", Uint16(0xFFFF), []uint32{0x0000FFFF}},
		{"int32 negative", Int32(-1), []uint32{0xFFFFFFFF}},
		{"uint32", Uint32(0x80000000), []uint32{0x80000000}},
		{"int64 negative", Int64(-2), []uint32{0xFFFFFFFE, 0xFFFFFFFF}},
		{"uint64", Uint64(0x1122334455667788), []uint32{0x55667788, 0x11223344}},
		{"float32", Float32(1.0), []uint32{0x3F800000}},
		{"float64", Float64(1.0), []uint32{0x00000000, 0x3FF00000}},
		{"float64 negative", Float64(-2.5), []uint32{0x00000000, 0xC0040000}},
		{"wide constant", Constant{Bytes: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}}, []uint32{0x04030201, 0x08070605, 0x00000009}},
		{"empty constant", Constant{}, nil},
		{"optional absent", None(), nil},
		{"optional present", Some(Word(7)), []uint32{7}},
		{"optional text", Some(Text("ab")), []uint32{0x6162}},
		{"empty list", List{}, nil},
		{"list", Words(1, 2, 3), []uint32{1, 2, 3}},
		{"tuple", Tuple{Word(9), Uint64(1)}, []uint32{9, 1, 0}},
		{"list of tuples", List{Tuple{Word(1), Word(2)}, Tuple{Word(3), Word(4)}}, []uint32{1, 2, 3, 4}},
		{"list of optionals", List{None(), Some(Word(5)), None()}, []uint32{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeWords(tt.op)
			if !equalWords(got, tt.want) {
				t.Errorf("Encode: got %#x, want %#x", got, tt.want)
			}
			if n := WordCount(tt.op); n != len(tt.want) {
				t.Errorf("WordCount: got %d, want %d", n, len(tt.want))
			}
		})
	}
}

func TestEncode_Text(t *testing.T) {
	tests := []struct {
		s    string
		want []uint32
	}{
		{"", []uint32{0}},
		{"a", []uint32{0x61}},
		{"ab", []uint32{0x6162}},
		{"abc", []uint32{0x616263}},
		{"abcd", []uint32{0x64636261, 0}},
		{"abcde", []uint32{0x64636261, 0x65}},
		{"abcdefgh", []uint32{0x64636261, 0x68676665, 0}},
	}

	for _, tt := range tests {
		got := encodeWords(Text(tt.s))
		if !equalWords(got, tt.want) {
			t.Errorf("Text(%q): got %#x, want %#x", tt.s, got, tt.want)
		}

		if n := WordCount(Text(tt.s)); n != len(tt.s)/4+1 {
			t.Errorf("WordCount(%q): got %d, want %d", tt.s, n, len(tt.s)/4+1)
		}

		// The unused high bytes of the last word hold the terminator.
		tail := len(tt.s) % 4
		last := got[len(got)-1]
		if tail == 0 && last != 0 {
			t.Errorf("Text(%q): terminator word is 0x%08X", tt.s, last)
		}
		if tail > 0 && last>>(8*tail) != 0 {
			t.Errorf("Text(%q): high bytes of 0x%08X not zero", tt.s, last)
		}
	}
}

func TestEncode_TextNonASCII(t *testing.T) {
	// Bytes above 0x7F must not leak into neighbouring bytes.
	got := encodeWords(Text("\xff\xfe"))
	if !equalWords(got, []uint32{0xFFFE}) {
		t.Errorf("got %#x, want [0xfffe]", got)
	}
}

func TestConstantOf_NamedTypes(t *testing.T) {
	type level int16
	type ratio float32

	c := ConstantOf(level(-3))
	if len(c.Bytes) != 2 || !c.Signed || c.Float {
		t.Errorf("level: got width=%d signed=%v float=%v", len(c.Bytes), c.Signed, c.Float)
	}
	if got := encodeWords(c); !equalWords(got, []uint32{0xFFFFFFFD}) {
		t.Errorf("level: got %#x", got)
	}

	f := ConstantOf(ratio(0.5))
	if len(f.Bytes) != 4 || f.Signed || !f.Float {
		t.Errorf("ratio: got width=%d signed=%v float=%v", len(f.Bytes), f.Signed, f.Float)
	}
	if got := encodeWords(f); !equalWords(got, []uint32{0x3F000000}) {
		t.Errorf("ratio: got %#x", got)
	}

	u := ConstantOf(uint16(0x8001))
	if u.Signed {
		t.Error("uint16 constant reported as signed")
	}
	if got := encodeWords(u); !equalWords(got, []uint32{0x8001}) {
		t.Errorf("uint16: got %#x", got)
	}
}

func TestWordCount_ConstantWidths(t *testing.T) {
	for width := 0; width <= 16; width++ {
		c := Constant{Bytes: make([]byte, width)}
		want := ((width + 3) &^ 3) / 4
		if got := WordCount(c); got != want {
			t.Errorf("width %d: got %d words, want %d", width, got, want)
		}
	}
}

func TestWordCount_Empty(t *testing.T) {
	if n := WordCount(); n != 0 {
		t.Errorf("WordCount(): got %d, want 0", n)
	}
}

// randomOperand builds an arbitrary operand tree of bounded depth.
func randomOperand(r *rand.Rand, depth int) Operand {
	kinds := 7
	if depth <= 0 {
		kinds = 4
	}
	switch r.Intn(kinds) {
	case 0:
		return Word(r.Uint32())
	case 1:
		return Pair{Low: uint16(r.Uint32()), High: uint16(r.Uint32())}
	case 2:
		width := r.Intn(13)
		raw := make([]byte, width)
		for i := range raw {
			raw[i] = byte(r.Uint32())
		}
		return Constant{Bytes: raw, Signed: r.Intn(2) == 0, Float: r.Intn(4) == 0}
	case 3:
		return Text(strings.Repeat("x", r.Intn(17)))
	case 4:
		if r.Intn(2) == 0 {
			return None()
		}
		return Some(randomOperand(r, depth-1))
	case 5:
		list := make(List, r.Intn(5))
		for i := range list {
			list[i] = randomOperand(r, depth-1)
		}
		return list
	default:
		// (id, literal) style pair
		return Tuple{Word(r.Uint32()), randomOperand(r, depth-1)}
	}
}

func TestWordCount_MatchesEncode(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		ops := make([]Operand, r.Intn(6))
		for j := range ops {
			ops[j] = randomOperand(r, 3)
		}

		b := NewWordBuffer(1)
		b.Append(0) // stand-in header
		before := b.Len()
		Encode(b, ops...)

		if written, counted := b.Len()-before, WordCount(ops...); written != counted {
			t.Fatalf("case %d: encoded %d words, counted %d (%#v)", i, written, counted, ops)
		}
	}
}
