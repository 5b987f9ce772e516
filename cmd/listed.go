package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/jquants"
	"github.com/google/subcommands"
)

// listedCmd implements the "listed" command, the default action of jqx.
type listedCmd struct{}

func (*listedCmd) Name() string { return "listed" }
func (*listedCmd) Synopsis() string {
	return "fetches the listed securities and writes txt and csv snapshots"
}
func (*listedCmd) Usage() string {
	return `jqx listed

Authenticates against the J-Quants API, fetches the full list of listed
securities and writes two timestamped files to the output directory:
listed_stocks_<timestamp>.txt and listed_stocks_<timestamp>.csv.

Credentials are taken from the -email/-password flags, the ` + envEmail + `
and ` + envPassword + ` environment variables, or an interactive prompt.
`
}

func (c *listedCmd) SetFlags(f *flag.FlagSet) {}

func (c *listedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	email, password, err := Source.Credentials()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	client := jquants.NewClient(*baseURL)
	token, err := client.Authenticate(email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not authenticate: %v\n", err)
		return subcommands.ExitFailure
	}

	records, err := client.ListedInfo(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch listed securities: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Fetched %d listed securities.\n", len(records))

	timestamp := time.Now().Format(jquants.TimestampFormat)
	txtPath, csvPath, err := jquants.WriteListed(*outDir, timestamp, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %s and %s\n", txtPath, csvPath)
	return subcommands.ExitSuccess
}
