package services_test

import (
	"errors"
	"testing"
	"time"

	"shopstack/internal/apperr"
	"shopstack/internal/repos"
	"shopstack/internal/services"
)

func newAuthSvc(t *testing.T) *services.AuthService {
	t.Helper()
	db := memdb(t)
	return services.NewAuthService(repos.NewUserRepo(db), "test-secret", time.Hour)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newAuthSvc(t)

	u, err := svc.SignUp("alice@example.com", "Alice", "Sup3r-Secret!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != "USER" || u.Email != "alice@example.com" {
		t.Fatalf("bad user view: %+v", u)
	}

	tok, got, err := svc.SignIn("alice@example.com", "Sup3r-Secret!")
	if err != nil {
		t.Fatal(err)
	}
	if tok == "" || got.UserID != u.UserID {
		t.Fatalf("bad sign-in result: tok=%q user=%+v", tok, got)
	}

	email, role, err := svc.ParseToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if email != "alice@example.com" || role != "USER" {
		t.Fatalf("bad claims: %q %q", email, role)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := newAuthSvc(t)

	if _, err := svc.SignUp("alice@example.com", "Alice", "Sup3r-Secret!"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.SignUp("alice@example.com", "Alice Again", "0ther-Secret!")
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error, got %v", err)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	svc := newAuthSvc(t)

	if _, err := svc.SignUp("alice@example.com", "Alice", "Sup3r-Secret!"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.SignIn("alice@example.com", "wrong-password"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, _, err := svc.SignIn("nobody@example.com", "Sup3r-Secret!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	svc := newAuthSvc(t)

	if _, _, err := svc.ParseToken("not-a-token"); err == nil {
		t.Fatal("want error for malformed token")
	}
}

func TestParseToken_Expired(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db), "test-secret", -time.Minute)

	tok, err := svc.IssueToken("alice@example.com", "USER")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.ParseToken(tok); err == nil {
		t.Fatal("want error for expired token")
	}
}
