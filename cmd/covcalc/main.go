package main

import (
	"fmt"
	"os"

	"github.com/zjy-dev/covcalc/cmd/covcalc/app"
	_ "github.com/zjy-dev/covcalc/internal/filter/plugins" // Register filter plugins
)

func main() {
	if err := app.NewCovcalcCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
