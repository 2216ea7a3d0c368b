package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cardpress "github.com/kmelas/go-cardpress"
)

// render <card.json> <format>: render a saved card to html, png, jpg or bmp.
func renderCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "render <card.json> <format>",
		Short: "Render a card file to HTML or a raster image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardFile := args[0]
			format := strings.ToLower(args[1])
			if format != "html" && !cardpress.SupportedExportFormat(format) {
				return fmt.Errorf("unsupported format %q (want html, png, jpg or bmp)", format)
			}

			log.Printf("Reading card file: %s", cardFile)
			cardBytes, err := os.ReadFile(cardFile)
			if err != nil {
				return fmt.Errorf("reading card file: %w", err)
			}
			var comp cardpress.Composition
			if err := json.Unmarshal(cardBytes, &comp); err != nil {
				return fmt.Errorf("parsing card file: %w", err)
			}

			// Replaying through the store enforces the composition
			// invariants on hand-edited files.
			store := cardpress.NewStoreFrom(comp, cardpress.StoreOptions{})
			snapshot := store.Snapshot()

			if format == "html" {
				out, err := cardpress.GenerateHTML(snapshot)
				if err != nil {
					return err
				}
				return writeOutput(outputFile, func(w io.Writer) error {
					_, err := io.WriteString(w, out)
					return err
				})
			}

			// Raster export defaults its filename to the recipient-derived
			// download name.
			if outputFile == "" {
				outputFile = cardpress.ExportFilename(snapshot.Recipient, format)
			}
			exporter := cardpress.NewExporter()
			err = writeOutput(outputFile, func(w io.Writer) error {
				return exporter.Export(cmd.Context(), snapshot, format, w)
			})
			if err != nil {
				return err
			}
			log.Printf("Output saved to: %s", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file path (html defaults to stdout)")
	return cmd
}

// writeOutput runs gen against path, or stdout when path is empty. A
// failed generation removes the partial file.
func writeOutput(path string, gen func(io.Writer) error) error {
	if path == "" {
		return gen(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := gen(f); err != nil {
		f.Close()
		if removeErr := os.Remove(path); removeErr != nil {
			log.Printf("Warning: could not remove incomplete file %q: %v", path, removeErr)
		}
		return err
	}
	return f.Close()
}
