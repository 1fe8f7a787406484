package nfa

import (
	"errors"
	"testing"
)

func TestBuilder_AddState(t *testing.T) {
	b := NewBuilder()
	for want := StateID(0); want < 5; want++ {
		if got := b.AddState(); got != want {
			t.Fatalf("AddState() = %d, want %d", got, want)
		}
	}
	if b.States() != 5 {
		t.Errorf("States() = %d, want 5", b.States())
	}
}

// TestBuilder_IndependentCounters checks that IDs are per builder.
func TestBuilder_IndependentCounters(t *testing.T) {
	b1 := NewBuilder()
	b2 := NewBuilder()
	b1.AddState()
	b1.AddState()
	if got := b2.AddState(); got != 0 {
		t.Errorf("second builder's first state = %d, want 0", got)
	}
}

func TestBuilder_AddTransition(t *testing.T) {
	b := NewBuilder()
	s0 := b.AddState()
	s1 := b.AddState()

	if err := b.AddTransition(s0, 'a', s1); err != nil {
		t.Fatalf("AddTransition failed: %v", err)
	}
	// duplicate edges collapse
	if err := b.AddTransition(s0, 'a', s1); err != nil {
		t.Fatalf("duplicate AddTransition failed: %v", err)
	}

	n, err := b.Build(s0, s1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := len(n.State(s0).Transitions()); got != 1 {
		t.Errorf("state 0 has %d transitions, want 1", got)
	}
	if !n.Accepts("a") {
		t.Error("built NFA should accept \"a\"")
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *Builder) error
	}{
		{
			name: "source out of bounds",
			run:  func(b *Builder) error { return b.AddTransition(7, 'a', 0) },
		},
		{
			name: "target out of bounds",
			run:  func(b *Builder) error { return b.AddTransition(0, 'a', 7) },
		},
		{
			name: "epsilon target invalid",
			run:  func(b *Builder) error { return b.AddEpsilon(0, 1, InvalidState) },
		},
		{
			name: "invalid start",
			run: func(b *Builder) error {
				_, err := b.Build(InvalidState, 1)
				return err
			},
		},
		{
			name: "invalid final",
			run: func(b *Builder) error {
				_, err := b.Build(0, 2)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.AddState()
			b.AddState()

			err := tt.run(b)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("error %T is not a *BuildError", err)
			}
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("error %v does not match ErrInvalidState", err)
			}
		})
	}
}

func TestBuildError_Message(t *testing.T) {
	err := &BuildError{Message: "boom", StateID: 3}
	if got, want := err.Error(), "NFA build error at state 3: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err = &BuildError{Message: "boom", StateID: InvalidState}
	if got, want := err.Error(), "NFA build error: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
