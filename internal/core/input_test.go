package core

import "testing"

func TestInputFramePreservesOrder(t *testing.T) {
	f := NewInputFrame()
	f.Push(CommandLaneLeft)
	f.Push(CommandNone)
	f.Push(CommandJump)
	f.Push(CommandLaneLeft)

	want := []Command{CommandLaneLeft, CommandJump, CommandLaneLeft}
	if f.Len() != len(want) {
		t.Fatalf("Len() = %d, expected %d", f.Len(), len(want))
	}
	for i, c := range want {
		if f.Commands[i] != c {
			t.Errorf("Commands[%d] = %v, expected %v", i, f.Commands[i], c)
		}
	}
	if !f.Has(CommandJump) {
		t.Error("Has(Jump) should be true")
	}
	if f.Has(CommandSlide) {
		t.Error("Has(Slide) should be false")
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Push(CommandSlide)

	clone := f.Clone()
	f.Clear()

	if f.Len() != 0 {
		t.Errorf("Clear() left %d commands", f.Len())
	}
	if clone.Len() != 1 || clone.Commands[0] != CommandSlide {
		t.Errorf("clone changed after Clear(): %v", clone.Commands)
	}
}

func TestCommandIsMovement(t *testing.T) {
	tests := []struct {
		cmd      Command
		expected bool
	}{
		{CommandLaneLeft, true},
		{CommandLaneRight, true},
		{CommandJump, true},
		{CommandSlide, true},
		{CommandTogglePause, false},
		{CommandExit, false},
		{CommandRestart, false},
	}

	for _, tc := range tests {
		if got := tc.cmd.IsMovement(); got != tc.expected {
			t.Errorf("%v.IsMovement() = %v, expected %v", tc.cmd, got, tc.expected)
		}
	}
}
