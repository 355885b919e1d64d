package xbridge

import (
	"errors"
	"testing"
)

func TestLevelStringAndParse(t *testing.T) {
	t.Parallel()

	for _, l := range Levels() {
		if !l.Valid() {
			t.Fatalf("%v reported invalid", l)
		}
		got, err := ParseLevel(l.String())
		if err != nil || got != l {
			t.Fatalf("round trip %v: got %v, %v", l, got, err)
		}
	}

	aliases := map[string]Level{
		"WARNING":  LevelWarn,
		" fatal ":  LevelCritical,
		"":         LevelInfo,
		"Critical": LevelCritical,
	}
	for s, want := range aliases {
		if got, err := ParseLevel(s); err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", s, got, err, want)
		}
	}

	if _, err := ParseLevel("verbose"); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
	if Level(3).Valid() || Level(3).String() != "level(3)" {
		t.Fatalf("unexpected rendering of an unknown level: %s", Level(3))
	}
}

func TestLevelsOrderAndCopy(t *testing.T) {
	t.Parallel()

	ls := Levels()
	for i := 1; i < len(ls); i++ {
		if ls[i] <= ls[i-1] {
			t.Fatalf("levels not ascending: %v", ls)
		}
	}
	ls[0] = LevelCritical
	if Levels()[0] != LevelDebug {
		t.Fatalf("Levels() exposes its backing array")
	}
}
