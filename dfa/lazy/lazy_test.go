package lazy

import (
	"errors"
	"testing"

	"github.com/coregx/redfa/dfa/subset"
	"github.com/coregx/redfa/nfa"
)

var equivalencePatterns = []string{
	"a",
	"a|b",
	"a*",
	"(a|b).c",
	"(a|b)*abb",
	"(a*)*",
	"(a|ε)(b|ε)",
	"a*b*|b*a*",
	"((ab)*|c)*d",
	"(a|b)*a(a|b)(a|b)(a|b)",
	"ε",
}

func compileNFA(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	n, err := nfa.CompilePattern(pattern)
	if err != nil {
		t.Fatalf("CompilePattern(%q) failed: %v", pattern, err)
	}
	return n
}

func mustNew(t *testing.T, n *nfa.NFA, config Config) *DFA {
	t.Helper()
	d, err := New(n, config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

// words returns every string over alphabet of length at most maxLen.
func words(alphabet []rune, maxLen int) []string {
	out := []string{""}
	level := []string{""}
	for range maxLen {
		var next []string
		for _, w := range level {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

func TestDFA_EquivalentToNFA(t *testing.T) {
	configs := []struct {
		name   string
		config Config
	}{
		{"default", DefaultConfig()},
		{"tiny cache", DefaultConfig().WithMaxStates(2).WithMaxCacheClears(1_000)},
		{"always fallback", DefaultConfig().WithMaxStates(1).WithMaxCacheClears(0)},
	}

	for _, p := range equivalencePatterns {
		for _, tc := range configs {
			t.Run(p+"/"+tc.name, func(t *testing.T) {
				n := compileNFA(t, p)
				d := mustNew(t, n, tc.config)

				alphabet := append(n.Symbols(), '#')
				for _, w := range words(alphabet, 5) {
					if got, want := d.Accepts(w), n.Accepts(w); got != want {
						t.Errorf("Accepts(%q) = %v, NFA.Accepts = %v", w, got, want)
					}
					if d.Cache().Size() > int(tc.config.MaxStates) {
						t.Fatalf("cache holds %d states, limit %d", d.Cache().Size(), tc.config.MaxStates)
					}
				}
			})
		}
	}
}

func TestDFA_BuildsOnlyVisitedStates(t *testing.T) {
	// The eager DFA for this pattern has 17 states.
	d := mustNew(t, compileNFA(t, "(a|b)*a(a|b)(a|b)(a|b)"), DefaultConfig())

	if d.Accepts("a") {
		t.Error(`Accepts("a") = true, want false`)
	}
	if got := d.Cache().Size(); got != 2 {
		t.Errorf("cache size after one symbol = %d, want 2", got)
	}

	if !d.Accepts("abbb") {
		t.Error(`Accepts("abbb") = false, want true`)
	}
	if d.Fallbacks() != 0 {
		t.Errorf("Fallbacks() = %d, want 0", d.Fallbacks())
	}
}

func TestDFA_Fallback(t *testing.T) {
	d := mustNew(t, compileNFA(t, "ab"), DefaultConfig().WithMaxStates(1).WithMaxCacheClears(0))

	if !d.Accepts("ab") {
		t.Error(`Accepts("ab") = false, want true`)
	}
	if d.Fallbacks() != 1 {
		t.Errorf("Fallbacks() = %d, want 1", d.Fallbacks())
	}

	// The empty input never leaves the start state.
	if d.Accepts("") {
		t.Error(`Accepts("") = true, want false`)
	}
	if d.Fallbacks() != 1 {
		t.Errorf("Fallbacks() = %d, want 1", d.Fallbacks())
	}
}

func TestDFA_CacheClears(t *testing.T) {
	d := mustNew(t, compileNFA(t, "abc"), DefaultConfig().WithMaxStates(2).WithMaxCacheClears(10))

	if !d.Accepts("abc") {
		t.Error(`Accepts("abc") = false, want true`)
	}
	if d.Fallbacks() != 0 {
		t.Errorf("Fallbacks() = %d, want 0", d.Fallbacks())
	}
	if d.Cache().ClearCount() == 0 {
		t.Error("expected the cache to be cleared at least once")
	}
}

func TestDFA_DeadState(t *testing.T) {
	d := mustNew(t, compileNFA(t, "ab"), DefaultConfig())

	if d.Accepts("c") {
		t.Error(`Accepts("c") = true, want false`)
	}
	start := d.Cache().State(0)
	if to, ok := start.next['c']; !ok || to != DeadState {
		t.Errorf("transition on 'c' = %v, %v; want DeadState, true", to, ok)
	}
}

func TestDFA_Stats(t *testing.T) {
	d := mustNew(t, compileNFA(t, "ab"), DefaultConfig())

	d.Accepts("ab")
	hits, misses, _ := d.Cache().Stats()
	if hits != 0 || misses != 3 {
		t.Errorf("first run: hits=%d misses=%d, want 0 and 3", hits, misses)
	}

	d.Accepts("ab")
	hits, misses, rate := d.Cache().Stats()
	if hits != 3 || misses != 3 {
		t.Errorf("second run: hits=%d misses=%d, want 3 and 3", hits, misses)
	}
	if rate != 0.5 {
		t.Errorf("hit rate = %v, want 0.5", rate)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero states", DefaultConfig().WithMaxStates(0), true},
		{"negative clears", DefaultConfig().WithMaxCacheClears(-1), true},
		{"zero clears", DefaultConfig().WithMaxCacheClears(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, subset.ErrInvalidConfig) {
				t.Errorf("error %v should match subset.ErrInvalidConfig", err)
			}
		})
	}

	if _, err := New(compileNFA(t, "a"), Config{}); err == nil {
		t.Error("New with zero config should fail")
	}
}
