package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate cria ou atualiza o schema de todas as tabelas
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
