package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// NormalizeResult counts what one Normalize call did.
type NormalizeResult struct {
	Archives  int `json:"archives"`
	Extracted int `json:"extracted"`
	Skipped   int `json:"skipped"`
}

// Normalizer extracts dataset archives with normalized member names.
type Normalizer struct {
	Table  RenameTable
	Logger logrus.FieldLogger
}

// NewNormalizer returns a normalizer using the default rename table.
func NewNormalizer(logger logrus.FieldLogger) *Normalizer {
	return &Normalizer{Table: DefaultRenameTable(), Logger: logger}
}

// Normalize extracts every .zip archive found under datasetDir.
//
// An archive at datasetDir/<dir>/x.zip is extracted into
// outDir/<dir lowercased>. Members that cannot be decoded or that would be
// written outside that directory are logged and skipped. A corrupt archive
// stops the run.
func (n *Normalizer) Normalize(ctx context.Context, datasetDir, outDir string) (*NormalizeResult, error) {
	archives, err := findArchives(datasetDir)
	if err != nil {
		return nil, err
	}
	n.Logger.WithField("archives", len(archives)).Info("Unzipping the original dataset")

	result := &NormalizeResult{}
	for _, path := range archives {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rel, err := filepath.Rel(datasetDir, filepath.Dir(path))
		if err != nil {
			return result, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		dest := filepath.Join(outDir, strings.ToLower(rel))

		if err := n.extractArchive(path, dest, result); err != nil {
			return result, err
		}
		result.Archives++
	}

	n.Logger.WithFields(logrus.Fields{
		"extracted": result.Extracted,
		"skipped":   result.Skipped,
	}).Info("Completed unzipping the original dataset")
	return result, nil
}

func findArchives(dir string) ([]string, error) {
	archives := make([]string, 0)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".zip") {
			archives = append(archives, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for archives: %w", dir, err)
	}
	sort.Strings(archives)
	return archives, nil
}

func (n *Normalizer) extractArchive(path, dest string, result *NormalizeResult) error {
	// Insecure member names are rejected per member below.
	r, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer r.Close()

	log := n.Logger.WithField("file", path)
	for _, f := range r.File {
		name, err := n.MemberPath(f)
		if err != nil {
			result.Skipped++
			log.WithError(err).Warn("Skipping archive member")
			continue
		}

		target, err := safeJoin(dest, name)
		if err != nil {
			result.Skipped++
			log.WithError(err).Warn("Skipping archive member")
			continue
		}

		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("failed to extract %s from %s: %w", f.Name, path, err)
		}
		if !f.FileInfo().IsDir() {
			result.Extracted++
		}
	}
	return nil
}

// MemberPath returns the normalized relative path of an archive member.
func (n *Normalizer) MemberPath(f *zip.File) (string, error) {
	name := f.Name
	if f.NonUTF8 {
		decoded, err := DecodeName(name)
		if err != nil {
			return "", err
		}
		name = decoded
	}
	return n.Table.Apply(name), nil
}

// safeJoin joins a slash-separated member path onto dest and rejects
// results outside dest.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	root := filepath.Clean(dest)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("member %q escapes the output directory", name)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
