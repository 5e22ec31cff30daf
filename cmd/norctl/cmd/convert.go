package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/norimage/norimage/pkg/compress"
	"github.com/norimage/norimage/pkg/convert"
)

// NewConvertCmd creates the convert command group
func NewConvertCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "convert between PNG and CIF",
		Long:  "convert raster images into CIF containers and back, applying optional grayscale, resize, brightness, and contrast adjustments along the way",
	}
	cmd.AddCommand(
		newPNGToCIFCmd(ctx),
		newCIFToPNGCmd(ctx),
	)

	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "input file path")
	pf.StringP("out", "o", "", "output file path")
	pf.Bool("grayscale", false, "convert to single-channel grayscale")
	pf.String("resize", "", "resize to WxH (e.g. 800x600)")
	pf.Int("brightness", 0, "brightness adjustment (-255..255)")
	pf.Int("contrast", 0, "contrast adjustment (-255..255)")
	pf.Int("workers", 0, "parallel chunk workers (0 = sequential)")
	return cmd
}

func newPNGToCIFCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "png-to-cif",
		Short: "encode a PNG into a CIF container",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, src, dst, err := convertOptions(cmd, args)
			if err != nil {
				return err
			}

			comp, _ := cmd.Flags().GetString("compression")
			if opts.Compression, err = compress.ParseType(comp); err != nil {
				return err
			}
			opts.Quality, _ = cmd.Flags().GetInt("quality")
			opts.ChunkSize, _ = cmd.Flags().GetInt("chunk-size")

			_, err = convert.PNGToCIF(ctx, src, dst, opts)
			return err
		},
	}
	pf := cmd.Flags()
	pf.StringP("compression", "c", "rle", "compression strategy (none|rle|delta|lossy)")
	pf.IntP("quality", "q", 0, "lossy quality 1..100 (0 = default)")
	pf.Int("chunk-size", 0, "raw bytes per payload chunk (0 = default)")
	return cmd
}

func newCIFToPNGCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "cif-to-png",
		Short: "decode a CIF container into a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, src, dst, err := convertOptions(cmd, args)
			if err != nil {
				return err
			}
			return convert.CIFToPNG(ctx, src, dst, opts)
		},
	}
}

// convertOptions reads the shared pipeline flags. Input and output paths
// come from --in/--out or the first two positional arguments.
func convertOptions(cmd *cobra.Command, args []string) (convert.Options, string, string, error) {
	src, _ := cmd.Flags().GetString("in")
	dst, _ := cmd.Flags().GetString("out")
	if src == "" && len(args) > 0 {
		src = args[0]
	}
	if dst == "" && len(args) > 1 {
		dst = args[1]
	}
	if src == "" || dst == "" {
		return convert.Options{}, "", "", fmt.Errorf("input and output paths are required (--in/--out or positional)")
	}

	var opts convert.Options
	opts.Grayscale, _ = cmd.Flags().GetBool("grayscale")
	opts.Brightness, _ = cmd.Flags().GetInt("brightness")
	opts.Contrast, _ = cmd.Flags().GetInt("contrast")
	opts.Workers, _ = cmd.Flags().GetInt("workers")

	if resize, _ := cmd.Flags().GetString("resize"); resize != "" {
		var w, h uint32
		if _, err := fmt.Sscanf(strings.ToLower(resize), "%dx%d", &w, &h); err != nil {
			return convert.Options{}, "", "", fmt.Errorf("invalid --resize %q, expected WxH: %w", resize, err)
		}
		opts.ResizeWidth, opts.ResizeHeight = w, h
	}
	return opts, src, dst, nil
}
