package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImagePool is an immutable, named, sorted collection of image paths.
type ImagePool struct {
	name   string
	images []string
}

// NewPool creates a pool from a list of image paths. The paths are copied
// and sorted so the pool does not depend on enumeration order.
func NewPool(name string, images []string) *ImagePool {
	sorted := append([]string(nil), images...)
	sort.Strings(sorted)
	return &ImagePool{name: name, images: sorted}
}

// LoadPool enumerates every ".jpg" file under dir, recursively.
// An unreadable or missing directory is an error.
func LoadPool(name, dir string) (*ImagePool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("pool %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pool %q: %s is not a directory", name, dir)
	}

	images := make([]string, 0)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".jpg") {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pool %q: failed to enumerate %s: %w", name, dir, err)
	}

	return NewPool(name, images), nil
}

// Name returns the pool name.
func (p *ImagePool) Name() string { return p.name }

// Len returns the number of images in the pool.
func (p *ImagePool) Len() int { return len(p.images) }

// Images returns a copy of the pool's image paths in pool order.
func (p *ImagePool) Images() []string {
	return append([]string(nil), p.images...)
}

// Without returns a new pool holding the images of p that are not in
// exclude, keeping pool order.
func (p *ImagePool) Without(name string, exclude []string) *ImagePool {
	skip := make(map[string]bool, len(exclude))
	for _, img := range exclude {
		skip[img] = true
	}

	remaining := make([]string, 0, len(p.images))
	for _, img := range p.images {
		if !skip[img] {
			remaining = append(remaining, img)
		}
	}
	return &ImagePool{name: name, images: remaining}
}
