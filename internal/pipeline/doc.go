// Package pipeline orchestrates file discovery, concurrent name parsing,
// output path planning and batch summary reporting.
//
// Types:
//   - Record (input, parse result, decoded release, planned output)
//   - RunStats (Total, Parsed, Untitled, Renamed)
//
// Functions:
//   - Discover(inputDir) → []string
//     Walk directory, filter by media extension, prune bonus-material
//     and hidden entries, sort deterministically.
//   - Run(ctx, cfg, log, parser, names) → RunStats, []Record
//     Parse names on a bounded worker pool, keep input order, then plan
//     collision-free library paths in that order.
//   - Coverage(records) → []FieldCount
package pipeline
