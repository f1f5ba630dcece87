package main

import (
	"bytes"
	"strings"
	"testing"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/session/sessiontest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	authorizeToken = ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDecodeTokenCommand(t *testing.T) {
	token := sessiontest.Token(t, domain.Claims{Role: domain.RoleClient, UserID: 42, DisplayName: "Cleo"})
	out, err := run(t, "decode-token", token)
	if err != nil {
		t.Fatalf("decode-token: %v", err)
	}
	for _, want := range []string{"Client", "42", "Cleo", "/dashboard/client"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "decode-token", "garbage"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestAuthorizeCommand(t *testing.T) {
	out, err := run(t, "authorize", "/dashboard/manager/trainer")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "REDIRECT /dashboard/manager/trainer -> /login") || !strings.Contains(out, "requires role Manager") {
		t.Errorf("anonymous output:\n%s", out)
	}

	token := sessiontest.Token(t, domain.Claims{Role: domain.RoleManager, UserID: 1})
	out, err = run(t, "authorize", "/dashboard/manager/trainer", "--token", token)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ALLOW") {
		t.Errorf("manager output:\n%s", out)
	}

	out, _ = run(t, "authorize", "/")
	if !strings.Contains(out, "ALLOW /") {
		t.Errorf("public output:\n%s", out)
	}
}

func TestLoadCSRFKey(t *testing.T) {
	key, err := loadCSRFKey(strings.Repeat("ab", 32))
	if err != nil || len(key) != 32 {
		t.Fatalf("key = %x, err = %v", key, err)
	}
	if _, err := loadCSRFKey("abcd"); err == nil {
		t.Error("short key accepted")
	}
	random, err := loadCSRFKey("")
	if err != nil || len(random) != 32 {
		t.Fatalf("random key = %x, err = %v", random, err)
	}
}
