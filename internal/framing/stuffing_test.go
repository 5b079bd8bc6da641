package framing

import (
	"bytes"
	"testing"
)

func TestStuffUnstuffRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01, 0x02, 0x03},
		{Start, End, Escape},
		{0xFF, Start, 0x00, End, Escape, 0x10},
	}

	for _, in := range cases {
		framed := Stuff(in)
		if framed[0] != Start {
			t.Fatalf("frame must start with Start, got 0x%02X", framed[0])
		}
		if framed[len(framed)-1] != End {
			t.Fatalf("frame must end with End, got 0x%02X", framed[len(framed)-1])
		}

		// Exactly one unescaped Start (at position 0) and one unescaped End
		// (at the end): walk the frame, skipping the literal byte after each
		// Escape, and count the sentinels that remain.
		startCount, endCount := 0, 0
		for i := 0; i < len(framed); i++ {
			switch framed[i] {
			case Escape:
				i++ // the next byte is an escaped literal
			case Start:
				startCount++
			case End:
				endCount++
			}
		}
		if startCount != 1 {
			t.Errorf("expected exactly one unescaped Start, got %d for %v", startCount, in)
		}
		if endCount != 1 {
			t.Errorf("expected exactly one unescaped End, got %d for %v", endCount, in)
		}

		out, consumed, ok := Unstuff(framed)
		if !ok {
			t.Fatalf("unstuff failed for %v", in)
		}
		if consumed != len(framed) {
			t.Errorf("expected to consume %d bytes, consumed %d", len(framed), consumed)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("round trip mismatch: in=%v out=%v", in, out)
		}
	}
}

func TestUnstuffResyncsPastGarbage(t *testing.T) {
	valid := Stuff([]byte{0x01, 0x00, 0x00, 0x00, 0x01})
	garbage := append([]byte{0xAA, 0x01, 0x92, 0x00, 0x92, 0x00}, valid...)

	out, consumed, ok := Unstuff(garbage)
	if !ok {
		t.Fatal("expected a decodable frame despite leading garbage")
	}
	if consumed != len(garbage) {
		t.Errorf("expected to consume the whole buffer, consumed %d of %d", consumed, len(garbage))
	}
	if !bytes.Equal(out, []byte{0x01, 0x00, 0x00, 0x00, 0x01}) {
		t.Errorf("unexpected payload after resync: %v", out)
	}
}

func TestUnstuffIncompleteFrameFails(t *testing.T) {
	_, _, ok := Unstuff([]byte{Start, 0x01, 0x02})
	if ok {
		t.Error("expected incomplete frame (no End) to fail")
	}
}

func TestUnstuffTrailingEscapeFails(t *testing.T) {
	_, _, ok := Unstuff([]byte{Start, 0x01, Escape})
	if ok {
		t.Error("expected a dangling escape at end of buffer to fail")
	}
}
