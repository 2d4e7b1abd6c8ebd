package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/SACCSF/linkedin"
	"github.com/SACCSF/linkedin/extract"
	"github.com/SACCSF/linkedin/kong"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := kong.NewMain("companies2json", linkedin.KindCompany)

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", extract.ErrorText(err))
		stop()
		os.Exit(1)
	}
}
