package state

import (
	"errors"
	"testing"
)

func TestSwitcherShowsExactlyOneMode(t *testing.T) {
	s := NewSwitcher()
	for _, target := range []Mode{ModeDraft, ModeMeeting, ModeChat, ModeMeeting} {
		if _, err := s.Switch(target); err != nil {
			t.Fatalf("switch to %s: %v", target, err)
		}
		visible, active := 0, 0
		for _, m := range Modes {
			if s.Visible(m) {
				visible++
			}
			if s.Indicator(m) {
				active++
			}
		}
		if visible != 1 || active != 1 {
			t.Fatalf("after switching to %s: %d visible, %d active", target, visible, active)
		}
		if !s.Visible(target) || !s.Indicator(target) {
			t.Fatalf("expected %s to be shown", target)
		}
	}
	if s.Entries(ModeMeeting) != 2 || s.Entries(ModeChat) != 2 {
		t.Fatalf("unexpected entry counts: meeting=%d chat=%d", s.Entries(ModeMeeting), s.Entries(ModeChat))
	}
}

func TestSwitcherRejectsInvalidMode(t *testing.T) {
	s := NewSwitcher()
	s.Switch(ModeDraft)
	if _, err := s.Switch(Mode(7)); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if s.Active() != ModeDraft {
		t.Fatalf("expected active mode unchanged, got %s", s.Active())
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Meeting "); err != nil || m != ModeMeeting {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("calendar"); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}
