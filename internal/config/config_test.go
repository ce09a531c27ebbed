package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REPORTS_DIR", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	c := Load()
	if c.AppEnv != "development" || c.Production() {
		t.Fatalf("AppEnv = %q", c.AppEnv)
	}
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.DBDriver != DriverMySQL {
		t.Fatalf("DBDriver = %q, want mysql", c.DBDriver)
	}
	if c.AccessTokenTTL != 7*24*time.Hour {
		t.Fatalf("AccessTokenTTL = %v", c.AccessTokenTTL)
	}
	if c.ReportsDir != "reportes" {
		t.Fatalf("ReportsDir = %q", c.ReportsDir)
	}
	if c.RefreshTokenSecret != "s3cret" {
		t.Fatalf("refresh secret should fall back to JWT secret, got %q", c.RefreshTokenSecret)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLITE")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("SCHEDULER_ENABLED", "true")
	t.Setenv("REPORT_MAIL_TO", "a@x.co, b@x.co ,")
	t.Setenv("SMTP_ADDR", "smtp:25")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("APP_ENV", "production")

	c := Load()
	if !c.Production() {
		t.Fatal("APP_ENV=production should enable production mode")
	}
	if c.DBDriver != DriverSQLite {
		t.Fatalf("DBDriver = %q", c.DBDriver)
	}
	if c.RedisDB != 3 || c.IdempotencyTTL() != time.Minute {
		t.Fatalf("redis db / ttl: %d %v", c.RedisDB, c.IdempotencyTTL())
	}
	if !c.SchedulerEnabled {
		t.Fatal("scheduler should be enabled")
	}
	if len(c.ReportMailTo) != 2 || c.ReportMailTo[1] != "b@x.co" {
		t.Fatalf("ReportMailTo = %v", c.ReportMailTo)
	}
	if !c.MailEnabled() {
		t.Fatal("mail should be enabled")
	}
	if c.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL = %v", c.AccessTokenTTL)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "8080", DBDriver: DriverMySQL,
			MySQLHost: "localhost", MySQLPort: "3306", MySQLDB: "db", MySQLUser: "u",
			JWTSecret: "x", AccessTokenTTL: time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.MySQLHost = "" }, wantErr: "missing MySQL"},
		{name: "bad port", mutate: func(c *Config) { c.MySQLPort = "not-a-port" }, wantErr: "invalid MYSQL_PORT"},
		{name: "sqlite ok", mutate: func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "x.db"; c.MySQLHost = "" }},
		{name: "sqlite missing path", mutate: func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }, wantErr: "SQLITE_PATH"},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "oracle" }, wantErr: "unsupported DB_DRIVER"},
		{name: "missing jwt", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "missing port", mutate: func(c *Config) { c.AppPort = "" }, wantErr: "APP_PORT"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("want err containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "h", MySQLPort: "3307", MySQLDB: "d"}
	want := "u:p@tcp(h:3307)/d?multiStatements=true&parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("MySQLDSN = %q, want %q", got, want)
	}
	if got := c.MigrateURL(); got != "mysql://"+want {
		t.Fatalf("MigrateURL = %q", got)
	}
}
