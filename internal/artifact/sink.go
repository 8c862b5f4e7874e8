package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ErrExists is returned by FileSink when the target exists and Force is not set.
var ErrExists = errors.New("file already exists")

// Sink offers an artifact to the user.
type Sink interface {
	Deliver(ctx context.Context, a *Artifact) error
}

// FileSink writes artifacts into a local directory.
type FileSink struct {
	Dir   string
	Force bool
}

// Deliver writes the artifact to Dir/Filename.
func (s FileSink) Deliver(_ context.Context, a *Artifact) error {
	dest := filepath.Join(s.Dir, a.Filename)

	if _, err := os.Stat(dest); err == nil && !s.Force {
		return fmt.Errorf("%s: %w", dest, ErrExists)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(dest, a.Content, 0644); err != nil {
		return err
	}

	log.Info().
		Str("path", dest).
		Int("bytes", len(a.Content)).
		Msg("Artifact saved")

	return nil
}

// WriterSink streams the artifact content, typically to stdout.
type WriterSink struct {
	W io.Writer
}

// Deliver writes the content followed by a newline.
func (s WriterSink) Deliver(_ context.Context, a *Artifact) error {
	if _, err := s.W.Write(a.Content); err != nil {
		return err
	}
	_, err := io.WriteString(s.W, "\n")
	return err
}

// HTTPSink answers an HTTP request with a file download.
type HTTPSink struct {
	W http.ResponseWriter
}

// Deliver sets the attachment headers and writes the content.
func (s HTTPSink) Deliver(_ context.Context, a *Artifact) error {
	h := s.W.Header()
	h.Set("Content-Type", a.ContentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	h.Set("Content-Length", strconv.Itoa(len(a.Content)))
	h.Set("Cache-Control", "no-store")

	_, err := s.W.Write(a.Content)
	return err
}
