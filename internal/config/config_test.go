package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "impulse.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Auth.TokenTTLHrs != 72 || cfg.Auth.Issuer != "impulse" || cfg.Auth.BcryptCost != 10 {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Session.DurationSeconds != 1200 || cfg.Session.SpinSteps != 15 || cfg.Session.SpinIntervalMS != 80 {
		t.Errorf("session = %+v", cfg.Session)
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
server:
  port: 9090
database:
  driver: mysql
  host: db.internal
  user: impulse
session:
  duration_seconds: 600
  spin_steps: 10
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" || cfg.Database.Host != "db.internal" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("db port = %d, want default 3306", cfg.Database.Port)
	}
	if cfg.Session.DurationSeconds != 600 || cfg.Session.SpinSteps != 10 {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Session.SpinIntervalMS != 80 {
		t.Errorf("spin interval = %d, want default 80", cfg.Session.SpinIntervalMS)
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("IMPULSE_DB_PASSWORD", "s3cret")
	t.Setenv("IMPULSE_JWT_SECRET", "signing-key")

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("db password = %q", cfg.Database.Password)
	}
	if cfg.Auth.Secret != "signing-key" {
		t.Errorf("jwt secret = %q", cfg.Auth.Secret)
	}
}

func TestParse_SecretsNotReadFromYAML(t *testing.T) {
	data := []byte(`
auth:
  secret: leaked
database:
  password: leaked
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Auth.Secret == "leaked" || cfg.Database.Password == "leaked" {
		t.Error("secret fields were read from yaml")
	}
}

func TestParse_InvalidDriver(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("unsupported driver accepted")
	}
	if !strings.Contains(err.Error(), "driver") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_MySQLRequiresUser(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: mysql\n"))
	if err == nil {
		t.Fatal("mysql without user accepted")
	}
	if !strings.Contains(err.Error(), "database.user") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("server: [")); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want 7000", cfg.Server.Port)
	}
}
