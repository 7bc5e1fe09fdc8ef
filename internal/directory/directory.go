package directory

import (
	"context"

	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// Directory is a listing handle bound to one path.
type Directory struct {
	path string
	enum *Enumerator
}

// Open returns a handle for path.
func (e *Enumerator) Open(path string) *Directory {
	return &Directory{path: path, enum: e}
}

// Path returns the bound path.
func (d *Directory) Path() string { return d.path }

// ChangePath rebinds the handle.
func (d *Directory) ChangePath(path string) { d.path = path }

func (d *Directory) All(ctx context.Context) (model.Listing, error) {
	return d.enum.List(ctx, d.path, model.ListAll, "")
}

// Files lists regular, non-hidden files, optionally narrowed by a mask like "*.png".
func (d *Directory) Files(ctx context.Context, mask string) (model.Listing, error) {
	return d.enum.List(ctx, d.path, model.ListFiles, mask)
}

func (d *Directory) Folders(ctx context.Context) (model.Listing, error) {
	return d.enum.List(ctx, d.path, model.ListFolders, "")
}

func (d *Directory) HiddenFiles(ctx context.Context) (model.Listing, error) {
	return d.enum.List(ctx, d.path, model.ListHiddenFiles, "")
}

func (d *Directory) HiddenFolders(ctx context.Context) (model.Listing, error) {
	return d.enum.List(ctx, d.path, model.ListHiddenFolders, "")
}

// Hidden lists every hidden entry, files and folders alike.
func (d *Directory) Hidden(ctx context.Context) (model.Listing, error) {
	return d.enum.List(ctx, d.path, model.ListAllHidden, "")
}
