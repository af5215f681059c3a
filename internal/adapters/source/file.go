package source

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/squadmaker/internal/domain/model"
)

// File reads players from a JSON document on disk on every call.
type File struct {
	path string
}

// NewFile returns a source reading path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name implements Source.
func (f *File) Name() string { return KindFile }

// Players implements Source.
func (f *File) Players(ctx context.Context) ([]*model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer fh.Close()

	return ParsePlayers(fh)
}
