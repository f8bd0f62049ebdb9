package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// InsertUser inserts a minimal user and returns its id
func InsertUser(ctx context.Context, db *sql.DB, email, username string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO usuarios (email, username, password, nivel_experiencia, es_premium, fecha_registro)
		VALUES ($1, $2, 'hash', 0, FALSE, CURRENT_DATE)
		RETURNING id`, email, username).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user %s: %w", username, err)
	}
	return id, nil
}

// InsertCategory inserts a category and returns its id
func InsertCategory(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO categorias (nombre, orden_prioridad, activa, coste_promedio)
		VALUES ($1, 0, TRUE, 0)
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert category %s: %w", name, err)
	}
	return id, nil
}

// InsertPoint inserts a point of interest in the given category and returns its id
func InsertPoint(ctx context.Context, db *sql.DB, name string, categoryID int64) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO puntos_interes (nombre, latitud, longitud, puntuacion_media, abierto_actualmente, categoria_id)
		VALUES ($1, 40.4168, -3.7038, 4.5, TRUE, $2)
		RETURNING id`, name, categoryID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert point %s: %w", name, err)
	}
	return id, nil
}
