// Package textutil provides text normalization and string-similarity
// primitives shared by the matcher and the content pipeline.
//
// The primary use cases are:
//   - Normalizing free-text product titles for comparison (lowercase,
//     accent folding, whitespace collapsing)
//   - Computing edit-distance based similarity scores in the 0-100 range,
//     including a substring-tolerant partial score
//
// Similarity scores are built on Levenshtein distance so that near-miss
// spellings ("hermes" vs "hermès", "birkin" vs "birkins") still score high.
package textutil
