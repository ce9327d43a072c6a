package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"httpkit/secret"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ErrUnknownDriver reports a driver the factory cannot assemble a DSN for.
var ErrUnknownDriver = errors.New("unknown database driver")

// Factory turns a Config into connection strings and open connections.
// Passwords never live in the config; they are resolved through the secret
// provider at assembly time.
type Factory struct {
	cfg     Config
	secrets secret.Provider
	logger  *slog.Logger
}

func NewFactory(cfg Config, secrets secret.Provider, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{cfg: cfg, secrets: secrets, logger: logger}
}

// DSN assembles the driver-specific connection string.
func (f *Factory) DSN(ctx context.Context) (string, error) {
	password, err := f.password(ctx)
	if err != nil {
		return "", err
	}

	switch f.cfg.Driver {
	case DriverSQLite:
		return f.sqliteDSN(), nil
	case DriverPostgres:
		return f.postgresDSN(password), nil
	case DriverMySQL:
		return f.mysqlDSN(password), nil
	}
	return "", errors.Wrapf(ErrUnknownDriver, "%q", f.cfg.Driver)
}

// Open opens the database through gorm. Only the bundled sqlite driver can
// be opened here; server-based drivers get their DSN from this factory but
// bring their own dialector.
func (f *Factory) Open(ctx context.Context) (*gorm.DB, error) {
	if f.cfg.Driver != DriverSQLite {
		return nil, errors.Wrapf(ErrUnknownDriver, "no bundled dialector for %q", f.cfg.Driver)
	}

	dsn, err := f.DSN(ctx)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(f.logger),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: f.cfg.Prefix,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}

	f.logger.Debug("database opened", "driver", f.cfg.Driver, "path", f.cfg.Path)
	return db.WithContext(ctx), nil
}

func (f *Factory) password(ctx context.Context) (string, error) {
	if f.cfg.PasswordSecret == "" {
		return "", nil
	}
	if f.secrets == nil {
		return "", errors.Errorf("password secret %q set but no provider configured", f.cfg.PasswordSecret)
	}

	password, err := f.secrets.Get(ctx, f.cfg.PasswordSecret)
	if err != nil {
		return "", errors.Wrapf(err, "resolving password secret %q", f.cfg.PasswordSecret)
	}
	return password, nil
}

func (f *Factory) sqliteDSN() string {
	dsn := f.cfg.Path
	if dsn == "" {
		dsn = DefaultConfig().Path
	}
	if params := f.encodedParams(); params != "" {
		dsn += "?" + params
	}
	return dsn
}

func (f *Factory) postgresDSN(password string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   f.hostPort(5432),
		Path:   "/" + f.cfg.Name,
	}
	if f.cfg.User != "" {
		if password != "" {
			u.User = url.UserPassword(f.cfg.User, password)
		} else {
			u.User = url.User(f.cfg.User)
		}
	}
	u.RawQuery = f.encodedParams()
	return u.String()
}

func (f *Factory) mysqlDSN(password string) string {
	var b strings.Builder
	if f.cfg.User != "" {
		b.WriteString(f.cfg.User)
		if password != "" {
			b.WriteString(":")
			b.WriteString(password)
		}
		b.WriteString("@")
	}
	fmt.Fprintf(&b, "tcp(%s)/%s", f.hostPort(3306), f.cfg.Name)
	if params := f.encodedParams(); params != "" {
		b.WriteString("?")
		b.WriteString(params)
	}
	return b.String()
}

func (f *Factory) hostPort(defaultPort int) string {
	host := f.cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := f.cfg.Port
	if port == 0 {
		port = defaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

func (f *Factory) encodedParams() string {
	if len(f.cfg.Params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f.cfg.Params))
	for k := range f.cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, f.cfg.Params[k])
	}
	return values.Encode()
}
