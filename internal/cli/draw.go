package cli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/observability"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	lang string // language tag for the sign text
	seed int64  // random seed; 0 draws from the current time
	json bool   // emit the raw record as JSON
	data string // directory of sign data files overriding the embedded set
}

// newDrawCmd creates the draw command.
func newDrawCmd() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw a random fortune sign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "sign language: zh (default), en")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for a reproducible draw")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the sign record as JSON")
	cmd.Flags().StringVar(&opts.data, "data", "", "directory of sign data files")

	return cmd
}

func runDraw(cmd *cobra.Command, opts *drawOpts) error {
	logger := loggerFromContext(cmd.Context())

	lang, err := i18n.Parse(opts.lang)
	if err != nil {
		return err
	}

	store, err := openStore(opts.data)
	if err != nil {
		return err
	}
	logger.Debug("sign store loaded", "signs", store.Count(lang), "lang", lang)

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rec, err := store.Draw(lang, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	observability.Draw().OnDraw(rec.ID, string(lang))

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	printSign(rec, lang)
	printNewline()
	printNextStep("Render a card", fmt.Sprintf("lingqian card --sign %s --lang %s", rec.ID, lang))
	return nil
}

// openStore loads signs from dir when given, else the embedded set.
func openStore(dir string) (*sign.Store, error) {
	if dir != "" {
		return sign.NewStoreFromDir(dir)
	}
	return sign.NewStore()
}

// luckLine renders the star rating with its theme word.
func luckLine(rec sign.Record) string {
	return StyleStars.Render(rec.LuckIndex) + " " + StyleDim.Render(sign.Theme(rec.Rating()))
}

// printSign prints a full sign record to stdout.
func printSign(rec sign.Record, lang i18n.Language) {
	fmt.Println(StyleTitle.Render(i18n.Text(nil, lang, i18n.KeyCardTitle)) + " " + StyleDim.Render(rec.ID))
	printNewline()
	printKeyValue("Luck", luckLine(rec))
	if rec.SummaryText != "" {
		printKeyValue("Summary", StyleSummary.Render(rec.SummaryText))
	}

	printSection(i18n.Text(nil, lang, i18n.KeyProphecyTitle), rec.ProphecyText)
	printSection(i18n.Text(nil, lang, i18n.KeyFortuneTitle), rec.FortuneText)

	if len(rec.CategorizedFortunes) > 0 {
		printNewline()
		for _, cat := range sign.Categories {
			if v := rec.Category(cat); v != "" {
				printKeyValue(cat, v)
			}
		}
	}
	if rec.Advice != "" {
		printNewline()
		printKeyValue("Advice", rec.Advice)
	}
	if rec.Mantra != nil && rec.Mantra.Title != "" {
		printKeyValue("Mantra", rec.Mantra.Title)
	}
}

// printSection prints a titled block of text, indenting each line.
func printSection(title, text string) {
	if text == "" {
		return
	}
	printNewline()
	fmt.Println(StyleTitle.Render(title))
	for _, line := range strings.Split(text, "\n") {
		fmt.Println("  " + StyleValue.Render(line))
	}
}
