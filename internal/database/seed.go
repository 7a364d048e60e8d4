package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user and a couple of categorized posts so the homepage has
// something to render. No-op if any users already exist.
func Seed(db *sql.DB, adminPassword string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
	`, "admin", string(hash)); err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Sample content so development starts with a non-empty homepage.
	var catID int64
	if err := db.QueryRow(`
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id
	`, "Câmeras de Segurança", "c-meras-de-seguran-a").Scan(&catID); err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO posts (title, slug, excerpt, content, category_name, category_id)
		VALUES
			($1, $2, $3, $4, $5, $6),
			($7, $8, $9, $10, $5, $6)
	`,
		"Como Escolher uma Câmera de Segurança",
		"como-escolher-uma-c-mera-de-seguran-a",
		"Resolução, visão noturna e armazenamento: o que realmente importa.",
		"<p>Antes de comprar uma câmera, avalie resolução, visão noturna e armazenamento.</p>",
		"Câmeras de Segurança", catID,
		"Câmera Wi-Fi ou Cabeada: Qual a Melhor Opção?",
		"c-mera-wi-fi-ou-cabeada-qual-a-melhor-op-o",
		"Comparamos estabilidade, custo e facilidade de instalação.",
		"<p>Câmeras Wi-Fi são fáceis de instalar; cabeadas são mais estáveis.</p>",
	); err != nil {
		return fmt.Errorf("seed insert posts: %w", err)
	}

	slog.Info("database seeded with default admin user and sample content",
		"username", "admin",
	)

	return nil
}
