package jquants

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/auth_user":
			var body struct {
				MailAddress string `json:"mailaddress"`
				Password    string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("auth_user: cannot decode body: %v", err)
			}
			if body.MailAddress != "user@example.com" || body.Password != "secret" {
				t.Errorf("auth_user: got credentials %q/%q", body.MailAddress, body.Password)
			}
			fmt.Fprint(w, `{"refreshToken":"r1"}`)
		case "/token/auth_refresh":
			if got := r.URL.Query().Get("refreshtoken"); got != "r1" {
				t.Errorf("auth_refresh: refreshtoken = %q, want %q", got, "r1")
			}
			fmt.Fprint(w, `{"idToken":"tok123"}`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).Authenticate("user@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error = %v", err)
	}
	if token != "tok123" {
		t.Errorf("Authenticate() = %q, want %q", token, "tok123")
	}
}

func TestAuthenticate_badCredentials(t *testing.T) {
	refreshCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/auth_user":
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"The incoming mailaddress or password is incorrect."}`)
		case "/token/auth_refresh":
			refreshCalls++
			fmt.Fprint(w, `{"idToken":"tok123"}`)
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Authenticate("user@example.com", "wrong")
	if !errors.Is(err, ErrAuthentication) {
		t.Errorf("Authenticate() error = %v, want ErrAuthentication", err)
	}
	if refreshCalls != 0 {
		t.Errorf("Authenticate() hit the ID token endpoint %d times after a rejected login", refreshCalls)
	}
}

func TestAuthenticate_expiredRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/auth_user":
			fmt.Fprint(w, `{"refreshToken":"stale"}`)
		case "/token/auth_refresh":
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"message":"The incoming token has expired"}`)
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Authenticate("user@example.com", "secret")
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Authenticate() error = %v, want ErrTokenExpired", err)
	}
}

func TestAuthenticate_missingField(t *testing.T) {
	tests := []struct {
		name     string
		authUser string
	}{
		{name: "empty object", authUser: `{}`},
		{name: "empty token", authUser: `{"refreshToken":""}`},
		{name: "not json", authUser: `<html>maintenance</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.authUser)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Authenticate("user@example.com", "secret")
			if !errors.Is(err, ErrAuthentication) {
				t.Errorf("Authenticate() error = %v, want ErrAuthentication", err)
			}
		})
	}
}
