package textutil

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// Ratio scores how similar two strings are as an integer in [0, 100].
// 100 means equal; 0 means no overlap at all. The score is derived from the
// Levenshtein distance normalized by the longer string's rune length.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := runeLen(a)
	if l := runeLen(b); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	score := 100 * (1 - float64(dist)/float64(longest))
	if score < 0 {
		return 0
	}
	return int(math.Round(score))
}

// PartialRatio scores the best substring alignment of the shorter string
// against the longer one, in [0, 100]. A short query fully contained in a
// longer string scores 100 regardless of surrounding words.
func PartialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}
	if len(shorter) == len(longer) {
		return Ratio(string(shorter), string(longer))
	}

	best := 0
	needle := string(shorter)
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := string(longer[start : start+len(shorter)])
		if score := Ratio(needle, window); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
