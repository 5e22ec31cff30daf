package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/norimage/norimage/pkg/cif"
)

// NewVerifyCmd creates the verify cobra command
func NewVerifyCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify CIF container integrity",
		Long:  "Runs a full structural and checksum validation of one or more CIF containers. Exits non-zero if any file fails.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one file path is required")
			}

			failed := 0
			for _, path := range args {
				file, err := cif.ReadFile(path, cif.DecodeOptions{})
				if err != nil {
					failed++
					fmt.Printf("%s: FAIL (%s)\n", path, classify(err))
					slog.DebugContext(ctx, "verification failed", "path", path, "error", err)
					continue
				}
				fmt.Printf("%s: OK (%dx%d %s, %s)\n", path,
					file.Image.Width, file.Image.Height, file.Image.Mode, file.Compression)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed verification", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

func classify(err error) string {
	switch {
	case errors.Is(err, cif.ErrIntegrity):
		return "checksum mismatch"
	case errors.Is(err, cif.ErrDimension):
		return "dimension mismatch"
	case errors.Is(err, cif.ErrCompression):
		return "corrupt payload"
	case errors.Is(err, cif.ErrFormat):
		return "malformed container"
	default:
		return err.Error()
	}
}
