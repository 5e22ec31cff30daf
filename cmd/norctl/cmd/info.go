package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/norimage/norimage/pkg/cif"
)

// NewInfoCmd creates the info cobra command
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "show CIF container details",
		Long:  "Decodes a CIF container and displays its dimensions, color mode, compression strategy, and metadata.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")
			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}
			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}

			file, err := cif.ReadFile(filePath, cif.DecodeOptions{})
			if err != nil {
				return err
			}

			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				printInfo(file)
			default:
				out := struct {
					Width       uint32       `json:"width"`
					Height      uint32       `json:"height"`
					Mode        string       `json:"color_mode"`
					Compression string       `json:"compression"`
					Meta        cif.Metadata `json:"metadata"`
				}{
					Width:       file.Image.Width,
					Height:      file.Image.Height,
					Mode:        file.Image.Mode.String(),
					Compression: file.Compression.String(),
					Meta:        file.Meta,
				}
				j, err := json.Marshal(out)
				if err != nil {
					return err
				}
				os.Stdout.Write(j)
				fmt.Println()
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "CIF file path to inspect")
	pf.String("format", "json", "output format (text|json)")
	return cmd
}

func printInfo(file *cif.File) {
	img := file.Image
	fmt.Println("=== Container ===")
	fmt.Printf("Dimensions: %dx%d\n", img.Width, img.Height)
	fmt.Printf("ColorMode: %s (%d channels)\n", img.Mode, img.Mode.Channels())
	fmt.Printf("Compression: %s\n", file.Compression)
	fmt.Printf("Pixels: %d bytes raw\n", len(img.Samples))

	fmt.Println("\n=== Metadata ===")
	fmt.Printf("ImageID: %s\n", file.Meta.ImageID)
	fmt.Printf("CreationDate: %d\n", file.Meta.CreationDate)
	if file.Meta.Author != "" {
		fmt.Printf("Author: %s\n", file.Meta.Author)
	}
	if file.Meta.CameraModel != "" {
		fmt.Printf("CameraModel: %s\n", file.Meta.CameraModel)
	}
	if file.Meta.ExposureTime != 0 {
		fmt.Printf("ExposureTime: %gs\n", file.Meta.ExposureTime)
	}
	if file.Meta.ISO != 0 {
		fmt.Printf("ISO: %d\n", file.Meta.ISO)
	}
	if file.Meta.FNumber != 0 {
		fmt.Printf("FNumber: %.1f\n", file.Meta.FNumber)
	}
	if file.Meta.FocalLength != 0 {
		fmt.Printf("FocalLength: %.1f\n", file.Meta.FocalLength)
	}
	for k, v := range file.Meta.CustomFields {
		fmt.Printf("Custom[%s]: %s\n", k, v)
	}
}
