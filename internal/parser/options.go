package parser

// Options controls how a pattern-backed handler reports its match. Build one
// with [DefaultOptions] and the Option helpers; it is resolved once at
// registration time and never mutated afterwards.
type Options struct {
	// SkipIfAlreadyFound skips the handler when its field already holds a
	// value. Default: true.
	SkipIfAlreadyFound bool
	// SkipFromTitle keeps the match offset out of title-boundary
	// computation. Default: false.
	SkipFromTitle bool
	// SkipIfFirst suppresses the handler when its match would precede every
	// other field matched so far. Default: false.
	SkipIfFirst bool
	// Remove deletes the matched span from the working title. Default: false.
	Remove bool
	// Value, when truthy, replaces the transform output entirely.
	Value any
	// Group selects the capture group whose text is transformed. The full
	// match is used when the group is absent or empty. Default: 1.
	Group int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		SkipIfAlreadyFound: true,
		Group:              1,
	}
}

// Option adjusts [Options] during registration.
type Option func(*Options)

// SkipFromTitle excludes the match from title-boundary computation.
func SkipFromTitle() Option { return func(o *Options) { o.SkipFromTitle = true } }

// SkipIfFirst suppresses matches that would be the earliest recognized token.
func SkipIfFirst() Option { return func(o *Options) { o.SkipIfFirst = true } }

// Remove deletes the matched span from the working title.
func Remove() Option { return func(o *Options) { o.Remove = true } }

// AllowOverwrite lets the handler run even when its field is already set,
// passing the previous value to the transform.
func AllowOverwrite() Option { return func(o *Options) { o.SkipIfAlreadyFound = false } }

// WithValue stores v instead of the transform output, e.g. for flag fields.
func WithValue(v any) Option { return func(o *Options) { o.Value = v } }

// CaptureGroup selects which capture group is transformed.
func CaptureGroup(n int) Option { return func(o *Options) { o.Group = n } }

func resolveOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
