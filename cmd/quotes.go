package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/etnz/jquants"
	"github.com/etnz/jquants/date"
	"github.com/google/subcommands"
)

// quotesCmd implements the "quotes" command: a daily OHLC harvest over
// every listed code.
type quotesCmd struct {
	days  int
	limit int
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "harvests daily quotes for all listed codes into a csv" }
func (*quotesCmd) Usage() string {
	return `jqx quotes [-days N] [-limit N]

Authenticates, fetches the list of listed securities, then downloads the
daily OHLC quotes of every code over the last N business days of the Tokyo
exchange and writes them to stock_prices_<timestamp>.csv.

-limit restricts the harvest to the first N codes, which is convenient to
try the command without walking the whole listing.
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Number of business days to fetch, counted back from the last session.")
	f.IntVar(&c.limit, "limit", 0, "Restrict the harvest to the first N codes (0 means all).")
}

func (c *quotesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if c.limit > 0 && len(records) > c.limit {
		records = records[:c.limit]
	}

	from, to := date.LastBusinessDays(c.days)
	log.Printf("Fetching quotes for %d codes over %s..%s", len(records), from, to)

	var all []jquants.DailyQuote
	for i, record := range records {
		code := jquants.LongCode(record.Code)
		quotes, err := client.DailyQuotes(token, code, from, to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not fetch quotes for %s: %v\n", record.Code, err)
			return subcommands.ExitFailure
		}
		for _, q := range quotes {
			// The API occasionally returns rows on closed days, skip them.
			if !q.Date.IsBusinessDay() {
				continue
			}
			all = append(all, q)
		}
		if (i+1)%100 == 0 {
			log.Printf("fetched %d/%d codes", i+1, len(records))
		}
	}

	timestamp := time.Now().Format(jquants.TimestampFormat)
	path, err := jquants.WriteQuotes(*outDir, timestamp, all)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %d quotes to %s\n", len(all), path)
	return subcommands.ExitSuccess
}
