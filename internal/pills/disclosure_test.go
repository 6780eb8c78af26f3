package pills

import "testing"

func TestDisclosure_PointerContract(t *testing.T) {
	var d Disclosure
	if d.IsOpen() {
		t.Fatal("Expected a new disclosure to be closed")
	}

	steps := []struct {
		event Event
		want  DisclosureState
	}{
		{PointerEnterIndicator, Open},
		{PointerEnterIndicator, Open},
		{PointerLeaveIndicator, Closed},
		{PointerEnterIndicator, Open},
		{PointerLeavePanel, Closed},
		{PointerLeavePanel, Closed},
	}

	for i, step := range steps {
		if got := d.Fire(step.event); got != step.want {
			t.Errorf("Step %d (%s): got %s, want %s", i, step.event, got, step.want)
		}
	}
}

func TestDisclosure_Keyboard(t *testing.T) {
	var d Disclosure
	d.Fire(FocusIndicator)
	if !d.IsOpen() {
		t.Error("Expected focus to open")
	}
	d.Fire(Escape)
	if d.IsOpen() {
		t.Error("Expected escape to close")
	}
	d.Fire(FocusIndicator)
	d.Fire(BlurIndicator)
	if d.State() != Closed {
		t.Error("Expected blur to close")
	}
}

func TestNext_UnknownEventKeepsState(t *testing.T) {
	if got := Next(Open, Event("click")); got != Open {
		t.Errorf("Next(Open, click) = %s", got)
	}
	if got := Next(Closed, Escape); got != Closed {
		t.Errorf("Next(Closed, escape) = %s", got)
	}
}

func TestTransitionTable(t *testing.T) {
	table := TransitionTable()
	if got := table["closed"][string(PointerEnterIndicator)]; got != "open" {
		t.Errorf("closed + pointerenter = %q", got)
	}
	if got := table["open"][string(PointerLeavePanel)]; got != "closed" {
		t.Errorf("open + pointerleave:panel = %q", got)
	}
	if _, ok := table["closed"][string(PointerLeavePanel)]; ok {
		t.Error("Expected no entry for a no-op transition")
	}
}
