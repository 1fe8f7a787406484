package conv

import (
	"math"
	"testing"
)

type stateID uint32

func TestID(t *testing.T) {
	if got := ID[stateID](42); got != 42 {
		t.Errorf("ID(42) = %d", got)
	}
	if got := ID[stateID](math.MaxUint16); got != math.MaxUint16 {
		t.Errorf("ID(MaxUint16) = %d", got)
	}
}

func TestID_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ID(-1) did not panic")
		}
	}()
	_ = ID[stateID](-1)
}

func TestLen(t *testing.T) {
	if got := Len(0); got != 0 {
		t.Errorf("Len(0) = %d", got)
	}
	if got := Len(10_000); got != 10_000 {
		t.Errorf("Len(10000) = %d", got)
	}
}
