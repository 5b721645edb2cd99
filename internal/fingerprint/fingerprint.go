// Package fingerprint computes difference hashes to spot near-duplicate
// photos during import.
package fingerprint

import (
	"fmt"
	"image"
	"io"
	"math/bits"
	"sync"

	"golang.org/x/image/draw"
)

// DefaultThreshold is the Hamming distance at or below which two photos
// count as the same shot.
const DefaultThreshold = 6

// Hash decodes an image from r and returns its difference hash.
func Hash(r io.Reader) (uint64, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("decode image: %w", err)
	}
	return DHash(img), nil
}

// DHash computes a 64-bit difference hash: the image is shrunk to 9x8 and
// each bit records whether a pixel is brighter than its right neighbour.
func DHash(img image.Image) uint64 {
	small := image.NewRGBA(image.Rect(0, 0, 9, 8))
	draw.BiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)

	var hash uint64
	bit := 63
	for y := range 8 {
		for x := range 8 {
			if luma(small, x, y) > luma(small, x+1, y) {
				hash |= 1 << bit
			}
			bit--
		}
	}
	return hash
}

// luma returns the ITU-R BT.601 brightness of a pixel (0-255).
func luma(img *image.RGBA, x, y int) float64 {
	c := img.RGBAAt(x, y)
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Distance returns the Hamming distance between two hashes.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Index remembers hashes and reports near duplicates. It is safe for
// concurrent use.
type Index struct {
	threshold int

	mu     sync.Mutex
	hashes []uint64
}

// NewIndex creates an index. A negative threshold uses DefaultThreshold.
func NewIndex(threshold int) *Index {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Index{threshold: threshold}
}

// Add records h unless it is within the threshold of a known hash, and
// reports whether it was a duplicate.
func (ix *Index) Add(h uint64) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, known := range ix.hashes {
		if Distance(h, known) <= ix.threshold {
			return true
		}
	}
	ix.hashes = append(ix.hashes, h)
	return false
}

// Len returns the number of distinct hashes.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.hashes)
}
