// Command benchtmpl renders and validates benchmark templates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/goliatone/go-benchtmpl/internal/commands"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := commands.NewRootCommand(commands.DefaultEnv(), version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
