// Package rewrite turns a matcher.Match into concrete subgraph-replacement
// rewrites and applies them under a strategy (spec §4.4, C4).
//
// A Rewriter proposes (match, replacement) pairs for a host circuit; a
// Strategy decides how to turn a batch of proposals into successor
// circuits. ECCRewriter and ExhaustiveStrategy are the two concrete
// implementations the TASO driver (package taso) is built against.
package rewrite
