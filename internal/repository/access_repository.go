package repository

import (
	"fmt"

	"github.com/axellelanca/cmdvault/internal/models"
	"gorm.io/gorm"
)

// AccessRepository est une interface qui définit les méthodes d'accès aux données
type AccessRepository interface {
	CreateAccess(access *models.Access) error
	CountAccessesByCommandID(commandID uint) (int, error)
}

// GormAccessRepository est l'implémentation de l'interface AccessRepository utilisant GORM.
type GormAccessRepository struct {
	db *gorm.DB
}

// NewAccessRepository crée et retourne une nouvelle instance de GormAccessRepository.
func NewAccessRepository(db *gorm.DB) *GormAccessRepository {
	return &GormAccessRepository{db: db}
}

// CreateAccess insère un nouvel enregistrement d'accès dans la base de données.
func (r *GormAccessRepository) CreateAccess(access *models.Access) error {
	if err := r.db.Create(access).Error; err != nil {
		return fmt.Errorf("failed to create access record: %w", err)
	}
	return nil
}

// CountAccessesByCommandID compte le nombre total d'accès pour une commande donnée.
func (r *GormAccessRepository) CountAccessesByCommandID(commandID uint) (int, error) {
	var count int64
	if err := r.db.Model(&models.Access{}).Where("command_id = ?", commandID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accesses for command ID %d: %w", commandID, err)
	}
	return int(count), nil
}
