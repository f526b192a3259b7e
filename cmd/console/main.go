// Command console runs the interactive store menu on stdin and stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/F-Fleron-G/bestbuy2/internal/catalog"
	"github.com/F-Fleron-G/bestbuy2/internal/checkout"
	"github.com/F-Fleron-G/bestbuy2/internal/console"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

func main() {
	catalogFile := flag.String("catalog", os.Getenv("CATALOG_FILE"), "YAML catalog to load instead of the built-in one")
	plain := flag.Bool("no-color", false, "disable ANSI colors")
	verbose := flag.Bool("v", false, "log engine activity to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l
	}
	defer logger.Sync()

	var (
		st  *store.Store
		err error
	)
	if *catalogFile != "" {
		st, err = catalog.LoadFile(*catalogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		st = catalog.Default()
	}

	var opts []console.Option
	if *plain {
		opts = append(opts, console.WithPalette(console.Palette{}))
	}
	svc := checkout.NewService(st, checkout.WithLogger(logger))
	if err := console.New(svc, os.Stdin, os.Stdout, opts...).Run(context.Background()); err != nil {
		logger.Error("console stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
