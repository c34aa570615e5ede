package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB(databaseName string) error {
	database, err := sql.Open("sqlite3", databaseName+"?_foreign_keys=1")
	if err != nil {
		return err
	}

	var enabled int
	err = database.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	if err != nil {
		return fmt.Errorf("error checking foreign keys: %v", err)
	}
	if enabled != 1 {
		return fmt.Errorf("foreign keys are not enabled")
	}

	if err = createSchema(database); err != nil {
		return fmt.Errorf("error creating schema: %v", err)
	}

	DB = database
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
