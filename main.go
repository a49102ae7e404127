package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/growdashtech/webpconvert/internal/cli"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: "+err.Error())

		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load() // load environment variables from the .env file, if it exists

	if len(os.Args) < 1 {
		return errors.New("missing application name")
	}

	// run the CLI application
	return cli.Run(context.Background(), os.Args)
}
