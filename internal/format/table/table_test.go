package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"a", "1"},
		{"long", "22"},
	}, []Alignment{AlignLeft, AlignRight})
	want := []string{"a      1", "long  22"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Format = %#v, want %#v", got, want)
	}
}

func TestFormatIgnoresEscapeSequences(t *testing.T) {
	got := Format([][]string{
		{"\x1b[1mab\x1b[0m", "x"},
		{"abc", "y"},
	}, nil)
	if got[0] != "\x1b[1mab\x1b[0m   x" {
		t.Fatalf("expected styled cell padded by printable width, got %q", got[0])
	}
}

func TestSummarySkipsEmptyValues(t *testing.T) {
	got := Summary([]Field{
		{Label: "Title", Value: "Sync"},
		{Label: "Agenda", Value: " "},
		{Label: "Recipients", Value: "a@x.com"},
	})
	want := []string{"     Title:  Sync", "Recipients:  a@x.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Summary = %#v, want %#v", got, want)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
