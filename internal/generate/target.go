package generate

import "io"

// RenderTarget receives the generated CSS text whenever regeneration
// completes. The core does not depend on how (or whether) the text is
// displayed, copied or written out.
type RenderTarget interface {
	Render(css string)
}

// TargetFunc adapts a plain function to a RenderTarget.
type TargetFunc func(css string)

func (f TargetFunc) Render(css string) { f(css) }

// NewWriterTarget renders generated CSS to an io.Writer, e.g. stdout
// for the generate subcommand. Write errors are the writer's problem;
// rendering never halts the core.
func NewWriterTarget(w io.Writer) RenderTarget {
	return TargetFunc(func(css string) {
		_, _ = io.WriteString(w, css)
	})
}

// discardTarget is the default until a real target is attached.
type discardTarget struct{}

func (discardTarget) Render(string) {}
