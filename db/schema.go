package db

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS spots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'available',
		category TEXT NOT NULL DEFAULT '',
		photo TEXT,
		expiry_date TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender_id INTEGER NOT NULL REFERENCES users(id),
		receiver_id INTEGER NOT NULL REFERENCES users(id),
		message_text TEXT NOT NULL,
		sent_at TEXT NOT NULL,
		read_status INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS push_tokens (
		user_id INTEGER PRIMARY KEY REFERENCES users(id),
		token TEXT NOT NULL
	)`,
}

var defaultCategories = []string{
	"Furniture",
	"Electronics",
	"Books",
	"Clothing",
	"Garden",
	"Other",
}

func createSchema(database *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	for _, name := range defaultCategories {
		if _, err := database.Exec(`INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
			return err
		}
	}
	return nil
}
