package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lingqianapp/lingqian/pkg/cache"
	"github.com/lingqianapp/lingqian/pkg/card"
	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// cardOpts holds the command-line flags for the card command.
type cardOpts struct {
	signID   string // sign to render
	request  string // free-text wish printed on the card
	lang     string // language tag
	output   string // output PNG path
	dataURI  bool   // print a data URI instead of writing a file
	qrTarget string // override the QR target URL
	data     string // directory of sign data files
}

// newCardCmd creates the card command.
func newCardCmd() *cobra.Command {
	var opts cardOpts

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render a sign as a share card PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.signID == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--sign is required")
			}
			return runCard(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.signID, "sign", "s", "", "sign ID to render (required)")
	cmd.Flags().StringVarP(&opts.request, "request", "r", "", "wish text printed on the card")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "card language: zh (default), en")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "card.png", "output file path")
	cmd.Flags().BoolVar(&opts.dataURI, "data-uri", false, "print a base64 data URI to stdout instead of writing a file")
	cmd.Flags().StringVar(&opts.qrTarget, "qr", "", "QR target URL override")
	cmd.Flags().StringVar(&opts.data, "data", "", "directory of sign data files")

	return cmd
}

func runCard(cmd *cobra.Command, opts *cardOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	lang, err := i18n.Parse(opts.lang)
	if err != nil {
		return err
	}

	store, err := openStore(opts.data)
	if err != nil {
		return err
	}
	rec, err := store.Get(lang, opts.signID)
	if err != nil {
		return err
	}

	png, cached, err := renderOrCached(cmd, rec, lang, opts)
	if err != nil {
		return err
	}

	if opts.dataURI {
		fmt.Println(card.PNGDataURI(png))
		return nil
	}

	if err := os.WriteFile(opts.output, png, 0644); err != nil {
		return err
	}
	status := "rendered"
	if cached {
		status = "cached"
	}
	prog.done(fmt.Sprintf("Card for %s ready (%s)", rec.ID, status))
	printSuccess("Card written")
	printFile(opts.output)
	return nil
}

// renderOrCached serves the card from the local file cache when the QR
// target is unmodified, rendering and caching on a miss. Cache failures
// degrade to rendering.
func renderOrCached(cmd *cobra.Command, rec sign.Record, lang i18n.Language, opts *cardOpts) ([]byte, bool, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var store cache.Cache = cache.NewNullCache()
	if opts.qrTarget == "" {
		if dir, err := cacheDir(); err == nil {
			if fc, err := cache.NewFileCache(dir); err == nil {
				store = fc
			} else {
				logger.Debug("file cache unavailable", "err", err)
			}
		}
	}
	defer store.Close()

	key := cache.NewDefaultKeyer().CardKey(rec.ID, string(lang), opts.request)
	if png, hit, err := store.Get(ctx, key); err == nil && hit {
		return png, true, nil
	}

	var composerOpts []card.Option
	if opts.qrTarget != "" {
		composerOpts = append(composerOpts, card.WithQRTarget(opts.qrTarget))
	}
	composer := card.New(composerOpts...)

	spin := newSpinner(ctx, "Rendering card...")
	spin.Start()
	result, err := composer.Compose(card.RenderRequest{
		Sign:        rec,
		UserRequest: opts.request,
		Language:    lang,
	})
	if err != nil {
		spin.StopWithError("Render failed")
		return nil, false, err
	}
	spin.Stop()

	if err := store.Set(ctx, key, result.PNG, 24*time.Hour); err != nil {
		logger.Debug("caching card", "err", err)
	}
	return result.PNG, false, nil
}
