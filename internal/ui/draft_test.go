package ui

import (
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inboxai-popup/internal/testutil"
	uistate "github.com/atomicstack/inboxai-popup/internal/ui/state"
)

const twoDrafts = `{"data":{"drafts":[
	{"subject":"Report","body":"Could you send the report?"},
	{"subject":"Quick ask","body":"Any chance of the report today?"}
]}}`

// fillDraft opens the wizard and fills receiver and intent.
func (f *fixture) fillDraft() {
	f.h.Press(tea.KeyF2)
	f.h.Type("bob@example.com")
	f.h.Press(tea.KeyTab)
	f.h.Type("ask for the report")
}

func TestDraftRequiresLogin(t *testing.T) {
	f := newFixture(t)
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)
	if f.backend.Count("/email/draft") != 0 {
		t.Fatalf("drafts must not be requested while logged out")
	}
	if !strings.Contains(f.view(), "Please log in first") {
		t.Fatalf("expected login alert:\n%s", f.view())
	}
}

func TestDraftMissingIntentAlerts(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.h.Press(tea.KeyF2)
	f.h.Type("bob@example.com")
	f.h.Press(tea.KeyCtrlS)
	if f.backend.Count("/email/draft") != 0 {
		t.Fatalf("invalid form must not be submitted")
	}
	if f.h.Model().alert == nil {
		t.Fatalf("expected validation alert")
	}
}

func TestDraftMalformedStaysOnInputs(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.backend.Respond(http.MethodPost, "/email/draft", testutil.JSON(`{"data":{"drafts":[]}}`))
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)

	if f.backend.Count("/email/draft") != 1 {
		t.Fatalf("expected one draft request")
	}
	w := f.h.Model().draft.wizard
	if w.Step() != uistate.StepInputs {
		t.Fatalf("expected step 1, got %v", w.Step())
	}
	if len(w.Drafts()) != 0 {
		t.Fatalf("expected no candidates, got %d", len(w.Drafts()))
	}
	if !strings.Contains(f.view(), "Could not generate drafts") {
		t.Fatalf("expected failure alert:\n%s", f.view())
	}
	f.h.Press(tea.KeyEnter)
	view := f.view()
	if !strings.Contains(view, "step 1/3") || !strings.Contains(view, "bob@example.com") {
		t.Fatalf("expected inputs kept after dismissing:\n%s", view)
	}
}

func TestDraftFlowSendsSelectedCandidate(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.backend.Respond(http.MethodPost, "/email/draft", testutil.JSON(twoDrafts))
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)

	req := f.backend.Requests("/email/draft")[0]
	if req.Body["receiver"] != "bob@example.com" || req.Body["tone"] != uistate.DefaultTone {
		t.Fatalf("unexpected draft request %#v", req.Body)
	}
	if f.h.Model().draft.wizard.Step() != uistate.StepReview {
		t.Fatalf("expected review step")
	}
	if !strings.Contains(f.view(), "Quick ask") {
		t.Fatalf("expected candidates:\n%s", f.view())
	}

	f.h.Type("2")
	if f.h.Model().draft.wizard.Step() != uistate.StepConfirm {
		t.Fatalf("expected confirm step")
	}
	f.h.Press(tea.KeyEnter)

	sends := f.backend.Requests("/email/send")
	if len(sends) != 1 {
		t.Fatalf("expected one send, got %d", len(sends))
	}
	if sends[0].Body["subject"] != "Quick ask" || sends[0].Body["to"] != "bob@example.com" {
		t.Fatalf("unexpected send body %#v", sends[0].Body)
	}
	if f.h.Model().draft.wizard.Step() != uistate.StepInputs {
		t.Fatalf("expected wizard reset after send")
	}
	if !strings.Contains(f.view(), "Email sent to bob@example.com") {
		t.Fatalf("expected sent notice:\n%s", f.view())
	}
}

func TestDraftSendWithoutSelectionSendsNothing(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.backend.Respond(http.MethodPost, "/email/draft", testutil.JSON(twoDrafts))
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)
	f.h.Press(tea.KeyCtrlS)
	if f.backend.Count("/email/send") != 0 {
		t.Fatalf("nothing may be sent without a selection")
	}
	if _, err := f.h.Model().draft.wizard.Send(); err == nil {
		t.Fatalf("expected send to fail at the review step")
	}
}

func TestDraftCancelReturnsToReview(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.backend.Respond(http.MethodPost, "/email/draft", testutil.JSON(twoDrafts))
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)
	f.h.Press(tea.KeyEnter)
	f.h.Press(tea.KeyEsc)
	w := f.h.Model().draft.wizard
	if w.Step() != uistate.StepReview {
		t.Fatalf("expected review step after cancel, got %v", w.Step())
	}
	if len(w.Drafts()) != 2 {
		t.Fatalf("candidates should survive cancel")
	}
	f.h.Press(tea.KeyEsc)
	if w.Step() != uistate.StepInputs {
		t.Fatalf("expected inputs after back, got %v", w.Step())
	}
	if f.h.Model().draft.inputs().Receiver != "bob@example.com" {
		t.Fatalf("inputs should survive back")
	}
	if f.h.Quit() {
		t.Fatalf("esc inside the wizard must not quit")
	}
}

func TestDraftConfirmHoldsWhileSending(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.backend.Respond(http.MethodPost, "/email/draft", testutil.JSON(twoDrafts))
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)
	f.h.Type("1")

	// Update directly so the send command stays unexecuted and in flight.
	m := f.h.Model()
	_, sendCmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sendCmd == nil || !m.draft.pending {
		t.Fatalf("expected a pending send")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if m.draft.wizard.Step() != uistate.StepConfirm {
		t.Fatalf("wizard left the confirm step during a send: %v", m.draft.wizard.Step())
	}
	if d, _ := m.draft.wizard.Confirmed(); d.Subject != "Report" {
		t.Fatalf("confirmed draft changed during a send: %#v", d)
	}

	f.backend.Respond(http.MethodPost, "/email/send", testutil.Status(http.StatusInternalServerError, "smtp down"))
	f.h.processCmd(sendCmd)
	if m.draft.wizard.Step() != uistate.StepConfirm {
		t.Fatalf("failed send should stay on confirm, got %v", m.draft.wizard.Step())
	}
	if sends := f.backend.Requests("/email/send"); len(sends) != 1 || sends[0].Body["subject"] != "Report" {
		t.Fatalf("unexpected sends %#v", sends)
	}
}

func TestDraftResetOnReentry(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.backend.Respond(http.MethodPost, "/email/draft", testutil.JSON(twoDrafts))
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)
	f.h.Press(tea.KeyF1)
	f.h.Press(tea.KeyF2)
	m := f.h.Model()
	if m.draft.wizard.Step() != uistate.StepInputs || m.draft.inputs().Receiver != "" {
		t.Fatalf("expected a fresh wizard on re-entry")
	}
}

func TestDraftCopyConfirmed(t *testing.T) {
	f := newFixture(t)
	f.login()
	f.backend.Respond(http.MethodPost, "/email/draft", testutil.JSON(twoDrafts))
	f.fillDraft()
	f.h.Press(tea.KeyCtrlS)
	f.h.Press(tea.KeyEnter)
	f.h.Press(tea.KeyCtrlY)
	if len(f.copied) != 1 || !strings.HasPrefix(f.copied[0], "Report\n\n") {
		t.Fatalf("expected draft copied, got %v", f.copied)
	}
}
