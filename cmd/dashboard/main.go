// Package main is the entry point for the InsightBoard terminal dashboard.
//
// Usage:
//
//	dashboard [-api-url url] [command] [args]
//
// Commands are list (the default), generate [-f file], toggle <id>,
// rm <id> and summary. The API URL and timeout come from the same
// configuration as the server (client.api_url, client.timeout).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/insightboard/internal/client"
	"github.com/phrazzld/insightboard/internal/config"
	"github.com/phrazzld/insightboard/internal/dashboard"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	apiURL := fs.String("api-url", "", "")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		dashboard.Usage(errOut)
		return dashboard.ExitUserError
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return dashboard.ExitConfigError
	}

	baseURL := cfg.Client.APIURL
	if *apiURL != "" {
		baseURL = *apiURL
	}

	c, err := client.New(baseURL, cfg.Client.Timeout)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return dashboard.ExitConfigError
	}

	return dashboard.Run(ctx, c, fs.Args(), dashboard.IO{In: stdin, Out: out, ErrOut: errOut})
}
