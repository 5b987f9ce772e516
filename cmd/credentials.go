package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	envEmail    = "JQUANTS_EMAIL"
	envPassword = "JQUANTS_PASSWORD"
)

var emailFlag = flag.String("email", "", "J-Quants account email. Takes precedence over the "+envEmail+" environment variable.")
var passwordFlag = flag.String("password", "", "J-Quants account password. Takes precedence over the "+envPassword+" environment variable. Prefer the environment variable or the interactive prompt.")

// CredentialSource supplies the J-Quants account credentials. Commands read
// from Source so tests can inject fixed values instead of a terminal read.
type CredentialSource interface {
	Credentials() (email, password string, err error)
}

// Source is the CredentialSource used by all commands.
var Source CredentialSource = consoleSource{}

// StaticSource returns fixed credentials.
type StaticSource struct{ Email, Password string }

func (s StaticSource) Credentials() (string, string, error) { return s.Email, s.Password, nil }

// consoleSource resolves credentials from flags, then the environment, then
// an interactive prompt. The password prompt does not echo when standard
// input is a terminal.
type consoleSource struct{}

func (consoleSource) Credentials() (email, password string, err error) {
	email = *emailFlag
	if email == "" {
		email = os.Getenv(envEmail)
	}
	if email == "" {
		fmt.Fprint(os.Stderr, "Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("cannot read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", fmt.Errorf("no email provided")
	}

	password = *passwordFlag
	if password == "" {
		password = os.Getenv(envPassword)
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			secret, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return "", "", fmt.Errorf("cannot read password: %w", err)
			}
			password = string(secret)
		} else {
			// stdin is a pipe, fall back to a plain line read.
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return "", "", fmt.Errorf("cannot read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
	}
	if password == "" {
		return "", "", fmt.Errorf("no password provided")
	}
	return email, password, nil
}
