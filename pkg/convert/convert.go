// Package convert bridges standard raster images and the CIF container.
// PNG decode/encode is delegated to the standard image library; this
// package owns the processing pipeline in between: grayscale, resize,
// brightness, and contrast, applied in that fixed order, followed by the
// selected compression on the way into a container.
package convert

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/norimage/norimage/pkg/cif"
	"github.com/norimage/norimage/pkg/compress"
	"github.com/norimage/norimage/pkg/transform"
)

// Options configures one conversion.
type Options struct {
	// Grayscale converts to single-channel luminance.
	Grayscale bool
	// ResizeWidth/ResizeHeight resize when both are non-zero.
	ResizeWidth  uint32
	ResizeHeight uint32
	// Brightness delta in [-255, 255]; 0 is a no-op.
	Brightness int
	// Contrast delta in [-255, 255]; 0 is a no-op.
	Contrast int
	// Compression selects the payload strategy for CIF output.
	Compression compress.Type
	// Quality tunes lossy compression (1..100, 0 = default).
	Quality int
	// ChunkSize overrides the payload chunk size.
	ChunkSize int
	// Workers enables parallel chunk processing when > 1.
	Workers int
	// Cache memoizes chunk computations across conversions.
	Cache *cif.ChunkCache
	// Meta overrides the generated metadata when non-nil.
	Meta *cif.Metadata
}

func (o Options) encodeOptions() cif.EncodeOptions {
	return cif.EncodeOptions{
		Compression: o.Compression,
		Quality:     o.Quality,
		ChunkSize:   o.ChunkSize,
		Workers:     o.Workers,
		Cache:       o.Cache,
	}
}

// apply runs the transform pipeline in the fixed order: grayscale, resize,
// brightness, contrast.
func (o Options) apply(img *cif.Image) (*cif.Image, error) {
	var err error
	if o.Grayscale && img.Mode == cif.RGB {
		if img, err = transform.Grayscale(img); err != nil {
			return nil, err
		}
	}
	if o.ResizeWidth > 0 && o.ResizeHeight > 0 {
		if img, err = transform.Resize(img, o.ResizeWidth, o.ResizeHeight); err != nil {
			return nil, err
		}
	}
	if o.Brightness != 0 {
		if img, err = transform.Brightness(img, o.Brightness); err != nil {
			return nil, err
		}
	}
	if o.Contrast != 0 {
		if img, err = transform.Contrast(img, o.Contrast); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// PNGToCIF reads a PNG, applies the pipeline, and writes a CIF container.
// Returns the image as written.
func PNGToCIF(ctx context.Context, src, dst string, opts Options) (*cif.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", src, err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}

	mode := cif.RGB
	if opts.Grayscale {
		mode = cif.Gray
	}
	img, err := cif.FromImage(decoded, mode)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img, err = opts.apply(img); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta := cif.NewMetadata()
	if opts.Meta != nil {
		meta = *opts.Meta
	}
	if err := cif.WriteFile(dst, img, meta, opts.encodeOptions()); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "converted png to cif",
		"src", src, "dst", dst,
		"size", fmt.Sprintf("%dx%d", img.Width, img.Height),
		"compression", opts.Compression.String())
	return img, nil
}

// CIFToPNG reads a CIF container, applies the pipeline, and writes a PNG.
func CIFToPNG(ctx context.Context, src, dst string, opts Options) error {
	file, err := cif.ReadFile(src, cif.DecodeOptions{Workers: opts.Workers, Cache: opts.Cache})
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := opts.apply(file.Image)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if err := png.Encode(out, img.ToImage()); err != nil {
		return fmt.Errorf("encoding %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}

	slog.InfoContext(ctx, "converted cif to png", "src", src, "dst", dst)
	return nil
}
