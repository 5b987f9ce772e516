package jquants

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// this file contains the writers for the flat-file snapshots.

// TimestampFormat names the output files, e.g. listed_stocks_20250826_153000.csv.
const TimestampFormat = "20060102_150405"

// utf8BOM is prepended to CSV files so spreadsheet tools pick up the UTF-8
// encoding of the Japanese company names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// listedHeader is the CSV header; column order matches the Security fields.
var listedHeader = []string{"Code", "CompanyName", "CompanyNameEnglish", "Sector17CodeName", "MarketCode", "ListingDate"}

func listedRow(s Security) []string {
	return []string{ShortCode(s.Code), s.CompanyName, s.CompanyNameEnglish, s.Sector, s.MarketCode, s.ListingDate.String()}
}

// ExportListedText writes the human-readable listing snapshot: a title line
// carrying the snapshot timestamp, then one line per record with every
// field in export order.
func ExportListedText(w io.Writer, timestamp string, records []Security) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Listed securities - snapshot %s\n", timestamp)
	fmt.Fprintln(bw, strings.Repeat("=", 80))
	for _, s := range records {
		fmt.Fprintln(bw, strings.Join(listedRow(s), "\t"))
	}
	return bw.Flush()
}

// ExportListedCSV writes the listing snapshot as CSV: a BOM, a header row,
// then one row per record. Quoting follows the standard CSV rules.
func ExportListedCSV(w io.Writer, records []Security) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(listedHeader); err != nil {
		return err
	}
	for _, s := range records {
		if err := cw.Write(listedRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteListed writes the listing snapshot to dir as both a text and a CSV
// file named from timestamp. Existing files of the same name are
// overwritten, so a rerun with identical inputs produces byte-identical
// files. Codes are written in their 4-character form (see ShortCode), so
// the files do not preserve the padded wire code.
//
// Every failure wraps ErrWrite and names the failing path; when the text
// file was already written the error says so, partial output is never
// silent.
func WriteListed(dir, timestamp string, records []Security) (txtPath, csvPath string, err error) {
	txtPath = filepath.Join(dir, "listed_stocks_"+timestamp+".txt")
	if err := writeFile(txtPath, func(w io.Writer) error {
		return ExportListedText(w, timestamp, records)
	}); err != nil {
		return "", "", fmt.Errorf("%w: %s: %v", ErrWrite, txtPath, err)
	}

	csvPath = filepath.Join(dir, "listed_stocks_"+timestamp+".csv")
	if err := writeFile(csvPath, func(w io.Writer) error {
		return ExportListedCSV(w, records)
	}); err != nil {
		return txtPath, "", fmt.Errorf("%w: %s (text file %s was written): %v", ErrWrite, csvPath, txtPath, err)
	}
	return txtPath, csvPath, nil
}

// quotesHeader matches the DailyQuote fields in export order.
var quotesHeader = []string{
	"Code", "Date", "Open", "High", "Low", "Close", "Volume", "TurnoverValue",
	"AdjustmentFactor", "AdjustmentOpen", "AdjustmentHigh", "AdjustmentLow",
	"AdjustmentClose", "AdjustmentVolume",
}

// ExportQuotesCSV writes daily quotes as CSV, one row per quote, codes in
// their 4-character form.
func ExportQuotesCSV(w io.Writer, quotes []DailyQuote) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(quotesHeader); err != nil {
		return err
	}
	for _, q := range quotes {
		row := []string{
			ShortCode(q.Code), q.Date.String(),
			q.Open.String(), q.High.String(), q.Low.String(), q.Close.String(),
			q.Volume.String(), q.TurnoverValue.String(),
			q.AdjustmentFactor.String(), q.AdjustmentOpen.String(), q.AdjustmentHigh.String(),
			q.AdjustmentLow.String(), q.AdjustmentClose.String(), q.AdjustmentVolume.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteQuotes writes the quotes harvest to dir as a single CSV named from
// timestamp, with the same overwrite semantics as WriteListed.
func WriteQuotes(dir, timestamp string, quotes []DailyQuote) (string, error) {
	path := filepath.Join(dir, "stock_prices_"+timestamp+".csv")
	if err := writeFile(path, func(w io.Writer) error {
		return ExportQuotesCSV(w, quotes)
	}); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return path, nil
}

// writeFile creates path and runs export against it, reporting create,
// write and close failures alike.
func writeFile(path string, export func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
