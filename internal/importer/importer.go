// Package importer probes image files for their pixel dimensions and hands
// them to the editor as asset sources.
//
// Only image headers are decoded unless duplicate detection is enabled. Files are probed concurrently within a
// batch; batches are delivered to the sink one at a time, in input order.
package importer

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/fingerprint"
)

// ErrUnsupported is returned for files whose format has no registered decoder.
var ErrUnsupported = errors.New("unsupported image format")

// Extensions lists the file extensions considered images.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

const (
	defaultConcurrency = 4
	defaultBatchSize   = 8
)

// Options configure an Importer.
type Options struct {
	Concurrency int
	BatchSize   int
	// OnProgress is called after each probed file.
	OnProgress func(done, total int)
	// Dedupe, when set, skips photos that look like one already imported.
	// Files are then fully decoded instead of reading only the header.
	Dedupe *fingerprint.Index
}

// Importer probes files and delivers batches of asset sources.
type Importer struct {
	opts Options
}

// New creates an importer. Zero options fall back to defaults.
func New(opts Options) *Importer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	return &Importer{opts: opts}
}

// FileError records a file that could not be probed.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Summary describes a finished import.
type Summary struct {
	Probed     int
	Accepted   int
	Failed     []FileError
	Duplicates []string
}

// Sink receives one batch of probed sources and returns how many it kept.
type Sink func(batch []album.AssetSource) int

// Probe decodes the image header from r.
func Probe(r io.Reader) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return 0, 0, "", ErrUnsupported
		}
		return 0, 0, "", fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, format, nil
}

// ProbeFile returns the asset source for the image at path. The ID is
// derived from the absolute path, so importing the same file twice yields
// the same ID.
func ProbeFile(path string) (album.AssetSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return album.AssetSource{}, fmt.Errorf("resolve path: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return album.AssetSource{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	w, h, _, err := Probe(f)
	if err != nil {
		return album.AssetSource{}, err
	}

	url := "file://" + filepath.ToSlash(abs)
	return album.AssetSource{
		ID:     "asset-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String(),
		URL:    url,
		Width:  float64(w),
		Height: float64(h),
	}, nil
}

// Import probes paths in batches and passes each batch to sink. Files that
// fail to probe are reported in the summary and skipped. Import stops early
// when ctx is cancelled.
func (im *Importer) Import(ctx context.Context, paths []string, sink Sink) (*Summary, error) {
	summary := &Summary{}
	total := len(paths)

	for start := 0; start < total; start += im.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		end := min(start+im.opts.BatchSize, total)
		chunk := paths[start:end]

		sources := make([]album.AssetSource, len(chunk))
		hashes := make([]uint64, len(chunk))
		errs := make([]error, len(chunk))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(im.opts.Concurrency)
		for i, path := range chunk {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				sources[i], errs[i] = ProbeFile(path)
				if errs[i] == nil && im.opts.Dedupe != nil {
					hashes[i], errs[i] = hashFile(path)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return summary, err
		}

		batch := make([]album.AssetSource, 0, len(chunk))
		for i, src := range sources {
			summary.Probed++
			switch {
			case errs[i] != nil:
				summary.Failed = append(summary.Failed, FileError{Path: chunk[i], Err: errs[i]})
			case im.opts.Dedupe != nil && im.opts.Dedupe.Add(hashes[i]):
				summary.Duplicates = append(summary.Duplicates, chunk[i])
			default:
				batch = append(batch, src)
			}
			if im.opts.OnProgress != nil {
				im.opts.OnProgress(summary.Probed, total)
			}
		}
		if len(batch) > 0 && sink != nil {
			summary.Accepted += sink(batch)
		}
	}
	return summary, nil
}

// hashFile returns the difference hash of the image at path.
func hashFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return fingerprint.Hash(f)
}

// IsImage reports whether path has an image extension.
func IsImage(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// ListImages returns image files under dir in lexical order.
func ListImages(dir string, recursive bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if IsImage(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list images in %s: %w", dir, err)
	}
	return paths, nil
}
