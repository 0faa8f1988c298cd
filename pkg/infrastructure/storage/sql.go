package storage

import (
	"database/sql"
	"embed"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLStore backs the keyed record store with a MySQL table. Used for
// kiosk-style deployments where several terminals share one state store;
// semantics stay last-write-wins, same as the file backend.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to state database")
	}
	store := &SQLStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLStore) migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to open embedded migrations")
	}
	driver, err := migratemysql.WithInstance(s.db.DB, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to prepare migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "failed to initialize migrations")
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}

func (s *SQLStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.Get(&value, "SELECT record_value FROM client_records WHERE record_key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "failed to read record %q", key)
	}
	return value, nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO client_records (record_key, record_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE record_value = VALUES(record_value)",
		key, value,
	)
	return errors.Wrapf(err, "failed to write record %q", key)
}

func (s *SQLStore) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM client_records WHERE record_key = ?", key)
	return errors.Wrapf(err, "failed to delete record %q", key)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
