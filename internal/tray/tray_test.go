package tray

import "testing"

func TestTray_Toggle(t *testing.T) {
	tr := New()
	if tr.Paused() {
		t.Fatal("new tray should not be paused")
	}

	var got []bool
	tr.OnPause(func(paused bool) { got = append(got, paused) })

	tr.handlePause()
	tr.handlePause()

	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("expected callbacks [true false], got %v", got)
	}
	if tr.Paused() {
		t.Error("expected tray to be running after two toggles")
	}
}

func TestTray_UpdatesBeforeReady(t *testing.T) {
	tr := New()

	// Menu items do not exist yet; updates must not panic.
	tr.SetLastGesture("fist")
	tr.SetTrained(3)

	if tr.trained != 3 {
		t.Errorf("expected trained count 3, got %d", tr.trained)
	}
}

func TestTitles(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{pauseTitle(false), "● Recognizing"},
		{pauseTitle(true), "○ Paused"},
		{lastTitle(""), "Last: none"},
		{lastTitle("fist"), "Last: fist"},
		{trainedTitle(0), "0 gestures trained"},
		{trainedTitle(1), "1 gesture trained"},
		{trainedTitle(4), "4 gestures trained"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}
