package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cardpress "github.com/kmelas/go-cardpress"
)

// upload <file>: push a photo to the hosting service and print its URL,
// ready to paste into a card file's slot.
func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a photo to the hosting service and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := uploadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			client := cardpress.NewUploadClient(cfg)
			res, err := client.UploadImage(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Println(res.URL)
			return nil
		},
	}
}
