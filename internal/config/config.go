package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppEnv      string
	AppPort     string
	CORSOrigins []string
	LogLevel    string

	DBDriver   string
	MySQLHost  string
	MySQLPort  string
	MySQLDB    string
	MySQLUser  string
	MySQLPass  string
	SQLitePath string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret          string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	ReportsDir string

	SchedulerEnabled bool
	SchedulerSpec    string

	SMTPAddr     string
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	ReportMailTo []string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func getduration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			return dur
		}
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads .env (when present) and then the process environment.
// Real environment variables win over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppEnv:      getenv("APP_ENV", "development"),
		AppPort:     getenv("APP_PORT", "8080"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "crediasesor"),
		MySQLUser:  getenv("MYSQL_USER", "crediasesor"),
		MySQLPass:  getenv("MYSQL_PASS", "crediasesor"),
		SQLitePath: getenv("SQLITE_PATH", "crediasesor.db"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     getduration("ACCESS_TOKEN_TTL", 7*24*time.Hour),
		RefreshTokenTTL:    getduration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		ReportsDir: getenv("REPORTS_DIR", "reportes"),

		SchedulerEnabled: getbool("SCHEDULER_ENABLED", false),
		SchedulerSpec:    getenv("SCHEDULER_SPEC", "0 2 1 * *"),

		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMTPFrom:     getenv("SMTP_FROM", "comisiones@crediasesor.local"),
		ReportMailTo: splitList(os.Getenv("REPORT_MAIL_TO")),
	}
	if c.RefreshTokenSecret == "" {
		c.RefreshTokenSecret = c.JWTSecret
	}
	return c
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

// Production turns on Secure cookies.
func (c *Config) Production() bool { return c.AppEnv == "production" }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

// MailEnabled reports whether commission reports should be mailed.
func (c *Config) MailEnabled() bool { return c.SMTPAddr != "" && len(c.ReportMailTo) > 0 }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// MigrateURL is the golang-migrate form of the MySQL DSN.
func (c *Config) MigrateURL() string { return "mysql://" + c.MySQLDSN() }
