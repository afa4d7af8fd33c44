// Package naming is the release catalog: the ordered set of field handlers
// that teach a [parser.Parser] to read scene and fansub release names, plus
// the typed [Release] view, library output paths and in-run collision
// resolution.
//
// Files:
//   - rules.go: the ordered rule table and [Register]
//   - parser.go: [Release], [ParseFilename], extension and folder context
//   - postprocess.go: [Decode] and parent-directory hints
//   - outputpath.go: [GetOutputPath]
//   - harmonize.go: [YearIndex], batch-wide show years
//   - collision.go: [CollisionResolver]
package naming
