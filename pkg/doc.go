// Package pkg provides the core libraries for the Lingqian fortune-sign
// service.
//
// # Overview
//
// Lingqian draws fortune signs (签) from a localized sign library and
// renders them as share card PNGs. The pkg directory is organized around
// that flow:
//
//  1. [sign] - The sign data model and the embedded sign library
//  2. [i18n] - Languages, translation tables, and date formatting
//  3. [card] - The two-pass card composer (measure, then paint)
//  4. [cache] - Byte caches for rendered cards (file, Redis, null)
//  5. [history] - Draw history stores (memory, MongoDB)
//  6. [config] - TOML configuration with defaults
//  7. [errors] - Coded errors and input validation
//  8. [observability] - Pluggable hooks for metrics and tracing
//  9. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow:
//
//	Sign library ([sign])
//	       ↓ draw
//	RenderRequest ([card])
//	       ↓ BuildPlan (measure pass)
//	Plan: blocks with final offsets
//	       ↓ Paint (draw pass) + QR inset
//	PNG bytes → cache ([cache]) → HTTP / file / data URI
//
// The composer measures every text block first, so the card's height is
// known before any pixel is drawn; the paint pass replays the plan without
// recomputing anything. Both passes share one style table, which is what
// keeps them in agreement.
//
// # Quick Start
//
// Draw a sign and render its card:
//
//	store, _ := sign.NewStore()
//	rec, _ := store.Draw(i18n.LangZH, rand.New(rand.NewSource(time.Now().UnixNano())))
//
//	composer := card.New()
//	c, _ := composer.Compose(card.RenderRequest{
//	    Sign:        rec,
//	    UserRequest: "问前程",
//	    Language:    i18n.LangZH,
//	})
//	os.WriteFile("card.png", c.PNG, 0644)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/card/...     # Composer only
//
// Layout tests use a fake font source with fixed metrics, so they run on
// hosts with no fonts installed.
//
// [sign]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/sign
// [i18n]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/i18n
// [card]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/card
// [cache]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/cache
// [history]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/history
// [config]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/config
// [errors]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/errors
// [observability]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/lingqianapp/lingqian/pkg/buildinfo
package pkg
