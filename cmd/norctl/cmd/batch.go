package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/norimage/norimage/pkg/cif"
	"github.com/norimage/norimage/pkg/compress"
	"github.com/norimage/norimage/pkg/convert"
)

// NewBatchCmd creates the batch cobra command
func NewBatchCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "convert a directory of PNGs to CIF",
		Long:  "Converts every PNG in a source directory into CIF containers in a destination directory, fanning the work out across parallel workers. A shared chunk cache speeds up directories with repeated content.",
		RunE: func(cmd *cobra.Command, args []string) error {
			srcDir, _ := cmd.Flags().GetString("src")
			dstDir, _ := cmd.Flags().GetString("dst")
			if srcDir == "" && len(args) > 0 {
				srcDir = args[0]
			}
			if dstDir == "" && len(args) > 1 {
				dstDir = args[1]
			}
			if srcDir == "" || dstDir == "" {
				return fmt.Errorf("source and destination directories are required")
			}

			var opts convert.Options
			comp, _ := cmd.Flags().GetString("compression")
			var err error
			if opts.Compression, err = compress.ParseType(comp); err != nil {
				return err
			}
			opts.Quality, _ = cmd.Flags().GetInt("quality")
			opts.Grayscale, _ = cmd.Flags().GetBool("grayscale")

			cacheSize, _ := cmd.Flags().GetInt("cache")
			if cacheSize > 0 {
				opts.Cache = cif.NewChunkCache(cacheSize)
			}

			workers, _ := cmd.Flags().GetInt("workers")
			results, err := convert.Batch(ctx, srcDir, dstDir, workers, opts)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Printf("%s: FAIL (%v)\n", r.Src, r.Err)
					continue
				}
				fmt.Printf("%s -> %s (%s)\n", r.Src, r.Dst, r.Elapsed.Round(time.Millisecond))
			}
			if opts.Cache != nil {
				hits, misses := opts.Cache.Stats()
				fmt.Printf("cache: %d hits, %d misses\n", hits, misses)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(results))
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("src", "s", "", "source directory of PNG files")
	pf.StringP("dst", "d", "", "destination directory for CIF output")
	pf.StringP("compression", "c", "rle", "compression strategy (none|rle|delta|lossy)")
	pf.IntP("quality", "q", 0, "lossy quality 1..100 (0 = default)")
	pf.Bool("grayscale", false, "convert to single-channel grayscale")
	pf.IntP("workers", "w", 0, "parallel workers (0 = one per CPU)")
	pf.Int("cache", 0, "chunk cache capacity in entries (0 = disabled)")
	return cmd
}
