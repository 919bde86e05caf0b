package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcopt/taso/rewrite"
)

func TestECCRewriter_ProposesSiblingReplacements(t *testing.T) {
	classes, err := rewrite.DecodeECCJSON([]byte(sampleECC))
	require.NoError(t, err)

	r, err := rewrite.NewECCRewriter(classes)
	require.NoError(t, err)

	host := buildHCXH(t) // contains an H;H subcircuit as a match target
	specs, err := r.GetRewrites(host)
	require.NoError(t, err)
	require.NotEmpty(t, specs)

	strategy := rewrite.ExhaustiveStrategy{}
	successors, errs := strategy.ApplyRewrites(specs, host)
	assert.Empty(t, errs)
	assert.Len(t, successors, len(specs))
	for _, s := range successors {
		assert.NotNil(t, s)
	}
}
