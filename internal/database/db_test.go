package database

import (
	"strings"
	"testing"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "crm",
		DBPass: "p@ss/word",
		DBHost: "db.internal",
		DBPort: "3306",
		DBName: "skyworld",
	}
	got := dsn(cfg)

	for _, want := range []string{
		"crm:p@ss/word@",
		"tcp(db.internal:3306)",
		"/skyworld",
		"parseTime=true",
		"charset=utf8mb4",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dsn = %q, missing %q", got, want)
		}
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	cfg := config.Config{DBUser: "crm", DBHost: "localhost", DBPort: "3306", DBName: "skyworld"}
	if got := dsn(cfg); strings.Contains(got, ":@") {
		t.Errorf("dsn = %q, empty password must not render a colon", got)
	}
}
