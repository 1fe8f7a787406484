// Package search finds substrings of a text that a compiled DFA accepts.
//
// Matches are leftmost-longest and non-empty: the earliest start offset
// wins, and from that start the longest accepted substring is taken.
// FindAll reports non-overlapping matches from left to right.
//
// When the pattern's language is finite and small, every word of it is loaded
// into an Aho-Corasick automaton that rejects texts with no occurrence of any
// word before the DFA is run.
package search

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/redfa/dfa/subset"
)

// Config configures a Searcher.
type Config struct {
	// MaxLiterals is the largest finite language loaded into the prefilter.
	// Zero or negative disables the prefilter.
	//
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxLiterals: 64}
}

// Match is one occurrence in a text. Start and End are byte offsets.
type Match struct {
	Start int
	End   int
	Text  string
}

// Searcher scans texts for matches of one DFA. It is immutable and safe for
// concurrent use.
type Searcher struct {
	dfa *subset.DFA

	// literals is the non-empty part of a finite language, or nil
	literals []string

	// prefilter holds literals; nil when the language is infinite or large
	prefilter *ahocorasick.Automaton

	// never is set when the language has no non-empty word at all
	never bool
}

// New creates a Searcher for d.
func New(d *subset.DFA, config Config) (*Searcher, error) {
	s := &Searcher{dfa: d}
	if config.MaxLiterals <= 0 {
		return s, nil
	}

	words, complete := d.Language(config.MaxLiterals)
	if !complete {
		return s, nil
	}

	for _, w := range words {
		if w != "" {
			s.literals = append(s.literals, w)
		}
	}
	if len(s.literals) == 0 {
		s.never = true
		return s, nil
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range s.literals {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	s.prefilter = auto
	return s, nil
}

// Literals returns the words loaded into the prefilter, in shortlex order.
func (s *Searcher) Literals() []string {
	return s.literals
}

// HasPrefilter reports whether texts are screened before the DFA runs.
func (s *Searcher) HasPrefilter() bool {
	return s.prefilter != nil || s.never
}

// IsMatch reports whether haystack contains a match.
func (s *Searcher) IsMatch(haystack string) bool {
	_, ok := s.Find(haystack)
	return ok
}

// Find returns the leftmost-longest match in haystack.
func (s *Searcher) Find(haystack string) (Match, bool) {
	if s.rejects(haystack) {
		return Match{}, false
	}
	return s.findAt(haystack, 0)
}

// FindAll returns all non-overlapping matches, left to right. A negative n
// means no limit; otherwise at most n matches are returned.
func (s *Searcher) FindAll(haystack string, n int) []Match {
	if n == 0 || s.rejects(haystack) {
		return nil
	}

	var matches []Match
	for at := 0; at < len(haystack); {
		m, ok := s.findAt(haystack, at)
		if !ok {
			break
		}
		matches = append(matches, m)
		if n > 0 && len(matches) == n {
			break
		}
		at = m.End
	}
	return matches
}

// rejects reports whether the prefilter proves haystack has no match.
func (s *Searcher) rejects(haystack string) bool {
	if s.never {
		return true
	}
	if s.prefilter == nil {
		return false
	}
	return !s.prefilter.IsMatch([]byte(haystack))
}

func (s *Searcher) findAt(haystack string, at int) (Match, bool) {
	for start := at; start < len(haystack); {
		if end := s.longestAt(haystack, start); end > start {
			return Match{Start: start, End: end, Text: haystack[start:end]}, true
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		start += size
	}
	return Match{}, false
}

// longestAt runs the DFA from start and returns the end of the longest
// accepted prefix of haystack[start:], or -1 if there is none.
func (s *Searcher) longestAt(haystack string, start int) int {
	end := -1
	state := s.dfa.Start()
	for i := start; i < len(haystack); {
		r, size := utf8.DecodeRuneInString(haystack[i:])
		state = s.dfa.Next(state, r)
		if state == subset.InvalidState {
			break
		}
		i += size
		if s.dfa.IsFinal(state) {
			end = i
		}
	}
	return end
}
