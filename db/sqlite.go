package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"pranaam/naam"
)

var database *sql.DB

// InitDB opens (or creates) the prediction audit database.
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        lang VARCHAR(3) NOT NULL,
        pred_label VARCHAR(20) NOT NULL,
        pred_prob_muslim REAL NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `

	_, err = database.Exec(query)
	return err
}

// Close releases the database handle.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// SaveResults records every row of a returned result table.
func SaveResults(lang string, table *naam.ResultTable) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	if table == nil || len(table.Records) == 0 {
		return nil
	}

	tx, err := database.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
        INSERT INTO predictions (name, lang, pred_label, pred_prob_muslim, created_at)
        VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range table.Records {
		if _, err := stmt.Exec(rec.Name, lang, rec.PredLabel, rec.PredProbMuslim, now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Entry is one stored prediction.
type Entry struct {
	Name           string    `json:"name"`
	Lang           string    `json:"lang"`
	PredLabel      string    `json:"pred_label"`
	PredProbMuslim float64   `json:"pred_prob_muslim"`
	CreatedAt      time.Time `json:"created_at"`
}

// QueryRecent returns the most recently stored predictions.
func QueryRecent(limit int) ([]Entry, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	rows, err := database.Query(`
        SELECT name, lang, pred_label, pred_prob_muslim, created_at
        FROM predictions
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Lang, &e.PredLabel, &e.PredProbMuslim, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
