// Command wordbreak rewrites an HTML document so that Japanese and Latin text
// wraps at word boundaries on narrow screens.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
)

const version = "0.1.0"

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("wordbreak"),
		kong.Description("Insert word-level break opportunities into Japanese and Latin text of an HTML file"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/wordbreak.json"),
		kong.Vars{"version": version},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", kctx.Model.Name, err)
		os.Exit(exitCode(err))
	}
}
