package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/prasetyowira/qrlogo/api"
	"github.com/prasetyowira/qrlogo/config"
	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/domain/session"
	"github.com/prasetyowira/qrlogo/infrastructure/imaging"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	text       string
	size       int
	border     int
	fill       string
	background string
	logo       string
	out        string
	preview    bool
	verify     bool
}

func newGenerateCmd(configPath *string) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a QR code and save it as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Diagnostics go to stderr so stdout stays clean for the preview
			appLogger.Initialize(false, appLogger.ParseLevel(cfg.LogLevel))
			defer appLogger.Close()

			if opts.out == "" {
				opts.out = api.DefaultSavePath(cfg.OutputDir, cfg.DefaultFilename)
			}

			return runGenerate(cmd.Context(), cmd.OutOrStdout(), newComposer(cfg), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.text, "text", "t", "", "Text or URL to encode")
	flags.IntVar(&opts.size, "size", constant.DefaultModuleSize, "Module size in pixels")
	flags.IntVar(&opts.border, "border", constant.DefaultBorder, "Quiet zone width in modules")
	flags.StringVar(&opts.fill, "fill", constant.DefaultFill, "Fill color (#rrggbb, #rgb, #rrggbbaa, black, white)")
	flags.StringVar(&opts.background, "background", constant.DefaultBackground, "Background color")
	flags.StringVar(&opts.logo, "logo", "", "Logo image placed at the center")
	flags.StringVarP(&opts.out, "out", "o", "", "Output PNG path (defaults to the configured output)")
	flags.BoolVar(&opts.preview, "preview", false, "Print the QR code to the terminal")
	flags.BoolVar(&opts.verify, "verify", false, "Decode the generated image and print the text")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

// runGenerate drives an in-memory session through update, generate and save
func runGenerate(ctx context.Context, out io.Writer, c session.Composer, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fill, err := composer.ParseColor(opts.fill)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	background, err := composer.ParseColor(opts.background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	svc := session.NewService(ctx, c, nil)
	svc.Update(ctx, session.State{
		Text:       opts.text,
		Size:       strconv.Itoa(opts.size),
		Border:     strconv.Itoa(opts.border),
		Fill:       fill,
		Background: background,
		LogoPath:   opts.logo,
	})

	img, err := svc.Generate(ctx)
	if err != nil {
		return err
	}

	if opts.preview {
		if err := imaging.WriteTerminal(out, img.Image, img.ModuleSize); err != nil {
			appLogger.CtxWarn(ctx, "Failed to print preview", appLogger.LoggerInfo{
				ContextFunction: constant.CtxTerminal,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAPIRender,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
			})
		}
	}

	if opts.verify {
		text, err := svc.Verify(ctx)
		if err != nil {
			fmt.Fprintf(out, constant.MsgDecodeFailedNotice+"\n", err)
		} else {
			fmt.Fprintf(out, constant.MsgDecodedNotice+"\n", text)
		}
	}

	saved, err := svc.Save(ctx, opts.out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, constant.MsgSavedNotice+"\n", saved)
	return nil
}
