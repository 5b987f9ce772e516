// Package jquants provides a small client for the J-Quants REST API and
// writers for the flat-file snapshots produced by the `jqx` command-line
// tool.
//
// The client covers the credential exchange (account credentials to refresh
// token, refresh token to ID token), the listed securities listing, and the
// daily OHLC quotes endpoint. Data endpoints are paginated; the client
// follows the pagination key until exhaustion and returns records in API
// order.
//
// The writers serialize a listing snapshot to a human-readable text file and
// to a CSV file, both named from a caller-supplied timestamp so that a rerun
// with identical inputs produces byte-identical outputs.
package jquants
