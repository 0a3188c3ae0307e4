package style

import (
	"reflect"
	"testing"
)

func charWidth(s string) float32 { return float32(len(s)) }

func TestWrap(t *testing.T) {
	got := Wrap("made for editing with macros", 12, charWidth)
	want := []string{"made for", "editing with", "macros"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWrapLongWordAndParagraphs(t *testing.T) {
	got := Wrap("a supercalifragilistic b\n\nend", 5, charWidth)
	want := []string{"a", "supercalifragilistic", "b", "", "end"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
