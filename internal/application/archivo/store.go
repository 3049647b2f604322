package archivo

import (
	"context"
	"io"
)

// Store abstracts where uploaded PDF files live. Keys are flat filenames;
// implementations never interpret path separators.
type Store interface {
	// Save writes the file under the given filename, replacing any
	// previous content.
	Save(ctx context.Context, filename string, r io.Reader, contentType string) error

	// Delete removes the file. It returns shared.ErrNotFound when the
	// file is already absent, so concurrent deletes resolve to exactly
	// one success.
	Delete(ctx context.Context, filename string) error

	// Exists reports whether the file is present.
	Exists(ctx context.Context, filename string) (bool, error)
}
