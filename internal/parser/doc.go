// Package parser extracts a clean title from a noisy release name while an
// ordered set of field handlers consumes portions of the same string.
//
// A [Parser] is a registry of [Handler] values. Handlers are either
// pattern-backed (built by [Parser.AddHandler] from a regex, a transform and
// [Options]) or custom ([HandlerFunc]). [Parser.Parse] runs them in
// registration order against a shrinking working title, tracks the title
// boundary, and finally passes the surviving prefix through [CleanTitle].
//
// Split along these boundaries: parser.go (registry and boundary
// resolution), regex.go and options.go (pattern adapter), normalize.go and
// scripts.go (title cleanup cascade), result.go, errors.go.
package parser
