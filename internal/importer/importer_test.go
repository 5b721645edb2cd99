package importer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/fingerprint"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	img := testImage(w, h)

	var err error
	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".bmp":
		err = bmp.Encode(&buf, img)
	case ".tif", ".tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		buf.WriteString("not an image")
	}
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestProbeFile_Formats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		w, h int
	}{
		{"a.png", 30, 20},
		{"b.bmp", 12, 40},
		{"c.tiff", 64, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, dir, tt.name, tt.w, tt.h)
			src, err := ProbeFile(path)
			if err != nil {
				t.Fatalf("probe: %v", err)
			}
			if src.Width != float64(tt.w) || src.Height != float64(tt.h) {
				t.Errorf("expected %dx%d, got %vx%v", tt.w, tt.h, src.Width, src.Height)
			}
			if !strings.HasPrefix(src.URL, "file://") || !strings.HasPrefix(src.ID, "asset-") {
				t.Errorf("unexpected source %+v", src)
			}

			again, _ := ProbeFile(path)
			if again.ID != src.ID {
				t.Error("expected stable id for the same file")
			}
		})
	}
}

func TestProbe_Unsupported(t *testing.T) {
	_, _, _, err := Probe(strings.NewReader("plain text"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestImport_Batches(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"1.png", "2.png", "3.png", "4.jpg", "5.png"} {
		paths = append(paths, writeImage(t, dir, name, 10*(i+1), 10))
	}

	var batches [][]album.AssetSource
	var progress []int
	im := New(Options{
		Concurrency: 2,
		BatchSize:   2,
		OnProgress:  func(done, total int) { progress = append(progress, done) },
	})

	summary, err := im.Import(context.Background(), paths, func(batch []album.AssetSource) int {
		batches = append(batches, batch)
		return len(batch)
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[1]) != 1 {
		t.Errorf("expected the corrupt file dropped from batch 2, got %d sources", len(batches[1]))
	}
	if batches[0][0].Width != 10 || batches[0][1].Width != 20 || batches[2][0].Width != 50 {
		t.Error("expected sources in input order")
	}
	if summary.Probed != 5 || summary.Accepted != 4 || len(summary.Failed) != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if !errors.Is(summary.Failed[0], ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for the corrupt file, got %v", summary.Failed[0].Err)
	}
	if len(progress) != 5 || progress[4] != 5 {
		t.Errorf("unexpected progress calls %v", progress)
	}
}

func TestImport_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "a.png", 10, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).Import(ctx, []string{path}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "b.PNG", 1, 1)
	writeImage(t, dir, "a.bmp", 1, 1)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeImage(t, sub, "c.png", 1, 1)

	flat, err := ListImages(dir, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(flat) != 2 || filepath.Base(flat[0]) != "a.bmp" || filepath.Base(flat[1]) != "b.PNG" {
		t.Errorf("unexpected flat listing %v", flat)
	}

	all, _ := ListImages(dir, true)
	if len(all) != 3 {
		t.Errorf("expected 3 images recursively, got %v", all)
	}
}

func writeGradient(t *testing.T, dir, name string, w, h int, reverse bool) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			v := uint8(x * 255 / w)
			if reverse {
				v = 255 - v
			}
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImport_Dedupe(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGradient(t, dir, "a.png", 120, 80, false),
		writeGradient(t, dir, "b.png", 60, 40, true),
		writeGradient(t, dir, "a-small.png", 60, 40, false),
	}

	var got []album.AssetSource
	im := New(Options{BatchSize: 2, Dedupe: fingerprint.NewIndex(-1)})
	summary, err := im.Import(context.Background(), paths, func(batch []album.AssetSource) int {
		got = append(got, batch...)
		return len(batch)
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(got) != 2 || got[0].Width != 120 || got[1].Width != 60 {
		t.Errorf("expected the two distinct photos, got %+v", got)
	}
	if len(summary.Duplicates) != 1 || summary.Duplicates[0] != paths[2] {
		t.Errorf("expected %s reported as duplicate, got %v", paths[2], summary.Duplicates)
	}
	if summary.Probed != 3 || summary.Accepted != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
}
