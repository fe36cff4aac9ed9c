package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Config struct {
	// DSN takes precedence over the discrete fields when set. Untagged
	// fields only read prefixed variables.
	DSN      string
	Host     string `default:"localhost"`
	Port     int    `default:"5432"`
	DB       string `default:"postgres"`
	User     string `default:"postgres"`
	Password string
	AppName  string        `split_words:"true" default:"insurance-callcenter-agent"`
	Timeout  time.Duration `default:"5s"`
	Insecure bool          `default:"true"`
}

// ErrInvalidConfig reports connection settings pgdriver cannot use.
var ErrInvalidConfig = errors.New("invalid postgres config")

func (c Config) validate() error {
	if strings.TrimSpace(c.DSN) != "" {
		return nil
	}
	if strings.TrimSpace(c.DB) == "" {
		return fmt.Errorf("%w: database is empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("%w: user is empty", ErrInvalidConfig)
	}
	return nil
}

func (c Config) options() []pgdriver.Option {
	opts := []pgdriver.Option{}
	if dsn := strings.TrimSpace(c.DSN); dsn != "" {
		opts = append(opts, pgdriver.WithDSN(dsn))
	} else {
		opts = append(opts,
			pgdriver.WithAddr(net.JoinHostPort(c.Host, strconv.Itoa(c.Port))),
			pgdriver.WithDatabase(c.DB),
			pgdriver.WithUser(c.User),
			pgdriver.WithPassword(c.Password),
			pgdriver.WithInsecure(c.Insecure),
		)
	}
	if c.AppName != "" {
		opts = append(opts, pgdriver.WithApplicationName(c.AppName))
	}
	if c.Timeout > 0 {
		opts = append(opts, pgdriver.WithTimeout(c.Timeout))
	}
	return opts
}

// Open returns a bun DB over pgdriver with SQL logging attached. It does not
// dial; use Ping to check connectivity.
func Open(cfg Config) (*bun.DB, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(cfg.options()...))
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(NewQueryHook())
	return db, nil
}

func Ping(ctx context.Context, db *bun.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}
