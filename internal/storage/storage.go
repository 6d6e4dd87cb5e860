// Package storage keeps uploaded product images.
package storage

import (
	"context"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

var allowedExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

// Store saves a named blob and returns the public path it is served from.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

// CheckImageName rejects file names whose extension is not an accepted image type.
func CheckImageName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExt[ext] {
		return apperr.Validation("file %q: only png, jpg, jpeg and gif images are accepted", name)
	}
	return nil
}

// Disk stores files under Dir and serves them under Prefix.
type Disk struct {
	Dir      string
	Prefix   string
	MaxBytes int64
}

func NewDisk(dir, prefix string, maxBytes int64) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{Dir: dir, Prefix: prefix, MaxBytes: maxBytes}, nil
}

func (d *Disk) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = filepath.Base(name)
	if err := CheckImageName(name); err != nil {
		return "", err
	}
	dst := filepath.Join(d.Dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, err, "create upload")
	}

	src := r
	if d.MaxBytes > 0 {
		src = io.LimitReader(r, d.MaxBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", apperr.Wrap(apperr.KindInternal, err, "write upload")
	}
	if d.MaxBytes > 0 && n > d.MaxBytes {
		_ = os.Remove(dst)
		return "", apperr.Validation("file %q exceeds %d bytes", name, d.MaxBytes)
	}
	return path.Join(d.Prefix, name), nil
}

// Remove deletes a file previously returned by Save. Missing files are ignored.
func (d *Disk) Remove(_ context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(d.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		log.Printf("[storage] remove %s: %v", name, err)
		return err
	}
	return nil
}
