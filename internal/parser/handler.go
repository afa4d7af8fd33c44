package parser

// Context is the per-call state threaded through every handler. It is owned
// by a single [Parser.Parse] call and never shared across calls.
type Context struct {
	// Title is the current working title. Offsets reported by handlers are
	// rune offsets into this string at invocation time.
	Title string
	// Result accumulates transformed field values.
	Result Result
	// Matched records the first raw match and offset per field.
	Matched map[string]Match
}

// Match is the first-seen raw match of a field within one parse call.
type Match struct {
	Raw   string
	Index int
}

// Outcome is what a handler reports back to the boundary resolver.
type Outcome struct {
	RawMatch      string
	MatchIndex    int // Rune offset into Context.Title.
	Remove        bool
	SkipFromTitle bool
}

// Handler is one named extraction rule. Implementations must not close over
// mutable shared state: a Parser may be used from many goroutines.
type Handler interface {
	Name() string
	Handle(ctx *Context) *Outcome
}

// HandlerFunc adapts a plain function to a custom handler body. It has no
// name of its own; [Parser.AddHandler] attaches one.
type HandlerFunc func(ctx *Context) *Outcome

// Transform turns matched text (and the field's previous value, if any)
// into a field value. A falsy return vetoes the match.
type Transform func(match string, prev any) any

// none is the identity transform used when AddHandler gets a nil transform.
func none(match string, _ any) any { return match }

type funcHandler struct {
	name string
	fn   HandlerFunc
}

func (h *funcHandler) Name() string                 { return h.name }
func (h *funcHandler) Handle(ctx *Context) *Outcome { return h.fn(ctx) }
