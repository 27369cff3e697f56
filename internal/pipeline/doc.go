// Package pipeline rewrites script text before it reaches the teleprompter.
//
// Two passes run on every script: operator-defined literal phrase
// replacements (in rule creation order, later rules seeing earlier output),
// then an advisory scan that flags words resembling known over-promotional
// phrasing. Category-specific heuristics add soft warnings for hooks without
// energy markers and calls-to-action without action verbs. Warnings never
// block transmission.
package pipeline
