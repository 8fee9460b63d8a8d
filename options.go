package slashdoc

import "context"

// Option is a function that configures a Slashdoc instance.
type Option func(*Slashdoc)

// WithToken sets the comment marker that starts a doc line.
func WithToken(token string) Option {
	return func(s *Slashdoc) {
		s.token = token
	}
}

// WithIndent sets the number of spaces per indent level.
func WithIndent(indent int) Option {
	return func(s *Slashdoc) {
		s.indent = indent
	}
}

// WithStylesheet sets the stylesheet href of the generated page.
func WithStylesheet(href string) Option {
	return func(s *Slashdoc) {
		s.stylesheet = href
	}
}

// WithCache enables the persistent parse cache in the user cache directory.
func WithCache(enabled bool) Option {
	return func(s *Slashdoc) {
		s.cache = enabled
	}
}

// WithContext sets the context checked between input files.
func WithContext(ctx context.Context) Option {
	return func(s *Slashdoc) {
		if ctx == nil {
			s.ctx = context.Background()
			return
		}

		s.ctx = ctx
	}
}

// SetOptions applies the given options to the [Slashdoc] instance.
//
// Note that applying options may override previously set values.
func (s *Slashdoc) SetOptions(opts ...Option) {
	for _, opt := range opts {
		opt(s)
	}
}
