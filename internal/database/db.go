// Package database opens the MySQL pool shared by every repository.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open builds the DSN, opens the pool and verifies connectivity before the
// server starts taking requests. utf8mb4 keeps the accented French labels
// ("Payé", "Terminée") intact end to end; parseTime maps DATE and DATETIME
// columns onto time.Time; loc=UTC so stored timestamps compare cleanly with
// NOW() and CURDATE() in the milestone queries.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	cred := user
	if pass != "" {
		cred = user + ":" + pass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cred, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Small CRM, small pool. Idle kept below open so bursts (dashboard plus
	// a public view warm-up) do not pin connections forever.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
