package server

import (
	"github.com/woozymasta/placefetch/assets"
	"github.com/woozymasta/placefetch/internal/processor"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Pipeline  *processor.Pipeline
	IndexHTML []byte
}

// NewServerContext prepares the embedded page and binds the pipeline.
// Per request sinks and notifiers are attached by the handlers.
func NewServerContext(p *processor.Pipeline) *ServerContext {
	return &ServerContext{
		Pipeline:  p,
		IndexHTML: minifyPage(assets.Index),
	}
}

// minifyPage minifies the HTML page and its inline styles.
// The unminified page is returned when minification fails.
func minifyPage(page []byte) []byte {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)

	out, err := m.Bytes("text/html", page)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to minify index page, serving as is")
		return page
	}

	log.Debug().
		Int("size", len(page)).
		Int("minified", len(out)).
		Msg("Index page minified")

	return out
}
