package main

import (
	"fmt"
	"image"
	"os"

	"github.com/prasetyowira/qrlogo/config"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/infrastructure/cache"
	"github.com/prasetyowira/qrlogo/infrastructure/imaging"
	"github.com/prasetyowira/qrlogo/infrastructure/qrcode"
	"github.com/spf13/cobra"
)

var version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "qrlogo",
		Short:        "QR code generator with logo overlay",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qrlogo %s\n", version)
		},
	})

	return root
}

// newComposer wires the encoder, logo pipeline, writer and scanner
func newComposer(cfg config.Config) *composer.Composer {
	lru := cache.NewNamespaceLRU[image.Image](cfg.CacheSize)

	return composer.New(
		qrcode.NewEncoder(),
		imaging.NewLogoLoader(lru),
		imaging.NewPNGWriter(),
		imaging.NewScanner(),
		composer.Options{MaxImageEdge: cfg.MaxImageEdge},
	)
}
