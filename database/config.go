// Package database assembles connection strings from configuration and a
// secret provider, and opens the bundled sqlite driver through gorm.
package database

// Driver names a supported database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

type Config struct {
	Driver Driver `json:"driver"`

	// Path is the database file for sqlite.
	Path string `json:"path"`

	// Server-based drivers.
	Host string `json:"host"`
	Port int    `json:"port"`
	Name string `json:"name"`
	User string `json:"user"`

	// PasswordSecret names the secret holding the password. Empty means
	// passwordless.
	PasswordSecret string `json:"password_secret"`

	// Params are appended to the DSN as query parameters.
	Params map[string]string `json:"params"`

	// Prefix is prepended to every table name.
	Prefix string `json:"prefix"`
}

func DefaultConfig() Config {
	return Config{
		Driver: DriverSQLite,
		Path:   "db.sqlite3",
	}
}
