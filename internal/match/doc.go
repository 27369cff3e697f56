// Package match resolves noisy product titles captured from the sales stream
// against the catalog index.
//
// Every entry contributes a small set of normalized search variants; the
// input title is scored against each variant with a substring-tolerant
// similarity metric and the best-scoring entry above the policy threshold
// wins. Ties resolve to the first indexed entry so resolution stays
// deterministic for a fixed catalog snapshot.
package match
