package commands

import (
	"os"

	"github.com/spf13/cobra"

	cardpress "github.com/kmelas/go-cardpress"
)

var (
	apiBase   string
	publicKey string
)

// uploadConfig assembles the shared upload configuration from flags,
// falling back to the environment.
func uploadConfig() cardpress.Config {
	base := apiBase
	if base == "" {
		base = os.Getenv("CARDPRESS_API_BASE")
	}
	key := publicKey
	if key == "" {
		key = os.Getenv("CARDPRESS_PUBLIC_KEY")
	}
	return cardpress.Config{BaseURL: base, PublicKey: key}
}

func Execute() error {
	root := &cobra.Command{
		Use:          "cardpress",
		Short:        "Compose and export greeting cards",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&apiBase, "api-base", "", "credential relay base URL (default $CARDPRESS_API_BASE)")
	root.PersistentFlags().StringVar(&publicKey, "public-key", "", "image hosting public key (default $CARDPRESS_PUBLIC_KEY)")

	root.AddCommand(renderCmd(), uploadCmd())
	return root.Execute()
}
