// Package markdown converts between documents and markdown text.
//
// Parsing is done with goldmark plus its strikethrough and task list
// extensions. Markdown has no notion of underline or highlight, so those
// styles travel as <u> and <mark> inline HTML. Nested block structure is
// flattened: every paragraph of a block quote becomes a quote block and
// nested lists become sibling list items.
package markdown

// Option configures Parse and Serialize.
type Option func(*options)

type options struct {
	wikiLinks bool
}

// WithWikiLinks enables [[Page]] links. When parsing, each [[Page]] in plain
// text becomes a link to "Page". When serializing, a link whose text is
// exactly its destination is written back as [[Page]].
func WithWikiLinks(enabled bool) Option {
	return func(o *options) {
		o.wikiLinks = enabled
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
