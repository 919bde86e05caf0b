package rewrite

import (
	"errors"
	"fmt"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/matcher"
	"github.com/qcopt/taso/pattern"
)

// ECCRewriter proposes rewrites drawn from a loaded set of equivalence
// classes (spec §4.4/§6): every circuit in a class that compiles to a valid
// Pattern becomes a scope-automaton entry, and every OTHER member of its
// class is a candidate replacement for a match against that pattern.
type ECCRewriter struct {
	m            *matcher.Matcher
	replacements [][]*core.Circuit // parallel to the Matcher's pattern slice
}

// NewECCRewriter builds an ECCRewriter from decoded equivalence classes
// (see DecodeECCJSON). A class member with no internal structure (identity,
// or otherwise empty of non-boundary nodes) cannot itself serve as a
// pattern — pattern.TryFromCircuit rejects it with pattern.ErrEmptyPattern
// — but it remains usable as a replacement for its siblings, so such
// members are skipped as patterns rather than failing the whole class.
func NewECCRewriter(classes []EquivalenceClass) (*ECCRewriter, error) {
	var patterns []*pattern.Pattern
	var replacements [][]*core.Circuit

	for _, class := range classes {
		for i, c := range class.Circuits {
			p, err := pattern.TryFromCircuit(c)
			if err != nil {
				if errors.Is(err, pattern.ErrEmptyPattern) {
					continue
				}
				return nil, fmt.Errorf("rewrite: class %q member %d: %w", class.ID, i, err)
			}
			sibs := make([]*core.Circuit, 0, len(class.Circuits)-1)
			for j, c2 := range class.Circuits {
				if j != i {
					sibs = append(sibs, c2)
				}
			}
			patterns = append(patterns, p)
			replacements = append(replacements, sibs)
		}
	}

	mm, err := matcher.FromPatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &ECCRewriter{m: mm, replacements: replacements}, nil
}

// GetRewrites returns one RewriteSpec per (match, sibling replacement)
// pair found against host.
func (r *ECCRewriter) GetRewrites(host *core.Circuit) ([]RewriteSpec, error) {
	matches := r.m.FindMatches(host)
	specs := make([]RewriteSpec, 0, len(matches))
	for _, match := range matches {
		for _, repl := range r.replacements[match.PatternID] {
			specs = append(specs, RewriteSpec{Match: match, Replacement: repl})
		}
	}
	return specs, nil
}
