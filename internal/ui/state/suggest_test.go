package state

import (
	"reflect"
	"testing"
)

func TestFilterSuggestions(t *testing.T) {
	if got := FilterSuggestions(QuickCommands, ""); !reflect.DeepEqual(got, QuickCommands) {
		t.Fatalf("expected all commands for blank query, got %#v", got)
	}
	got := FilterSuggestions(QuickCommands, "unrd")
	if !reflect.DeepEqual(got, []string{"show unread emails"}) {
		t.Fatalf("unexpected fuzzy matches %#v", got)
	}
	if got := FilterSuggestions(QuickCommands, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}

func TestBestSuggestion(t *testing.T) {
	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{query: "sch", want: "schedule a meeting", ok: true},
		{query: "emails", want: "emails from ", ok: true},
		{query: "last email", want: "summarize my last email", ok: true},
		{query: "smrz", want: "summarize my last email", ok: true},
		{query: "   ", ok: false},
		{query: "qqq", ok: false},
	}
	for _, tc := range cases {
		got, ok := BestSuggestion(QuickCommands, tc.query)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("BestSuggestion(%q) = %q, %v; want %q, %v", tc.query, got, ok, tc.want, tc.ok)
		}
	}
}
