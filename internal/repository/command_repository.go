package repository

import (
	"fmt"

	"github.com/axellelanca/cmdvault/internal/models"
	"gorm.io/gorm"
)

// CommandRepository est une interface qui définit les méthodes d'accès aux données
type CommandRepository interface {
	Create(command *models.Command) error
	GetByID(id uint) (*models.Command, error)
	GetByShortID(shortID string) (*models.Command, error)
	GetByName(name string) (*models.Command, error)
	List(params models.ListParams) ([]models.Command, int64, error)
	IncrementViews(id uint) error
	IncrementLikes(id uint) (int, error)
	IncrementShares(id uint) (int, error)
	Count() (int64, error)
	SumLikes() (int64, error)
	SumShares() (int64, error)
}

// GormCommandRepository est l'implémentation de CommandRepository utilisant GORM.
type GormCommandRepository struct {
	db *gorm.DB
}

// NewCommandRepository crée et retourne une nouvelle instance de GormCommandRepository.
func NewCommandRepository(db *gorm.DB) *GormCommandRepository {
	return &GormCommandRepository{db: db}
}

// Create insère une nouvelle commande dans la base de données.
func (r *GormCommandRepository) Create(command *models.Command) error {
	if err := r.db.Create(command).Error; err != nil {
		return fmt.Errorf("failed to create command: %w", err)
	}
	return nil
}

// GetByID récupère une commande par sa clé primaire.
func (r *GormCommandRepository) GetByID(id uint) (*models.Command, error) {
	var command models.Command
	if err := r.db.First(&command, id).Error; err != nil {
		return nil, err
	}
	return &command, nil
}

// GetByShortID récupère une commande en utilisant son short id public.
func (r *GormCommandRepository) GetByShortID(shortID string) (*models.Command, error) {
	var command models.Command
	if err := r.db.Where("short_id = ?", shortID).First(&command).Error; err != nil {
		return nil, err
	}
	return &command, nil
}

// GetByName récupère une commande par son nom exact.
func (r *GormCommandRepository) GetByName(name string) (*models.Command, error) {
	var command models.Command
	if err := r.db.Where("name = ?", name).First(&command).Error; err != nil {
		return nil, err
	}
	return &command, nil
}

// List returns one page of the filtered catalog plus the total filtered count.
// The count is taken before pagination so callers can compute page totals.
func (r *GormCommandRepository) List(params models.ListParams) ([]models.Command, int64, error) {
	query := r.db.Model(&models.Command{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR author LIKE ?",
			pattern, pattern, pattern)
	}
	if params.Category != "" && params.Category != models.CategoryAll {
		query = query.Where("category = ?", params.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count commands: %w", err)
	}

	switch params.Filter {
	case models.FilterTrending:
		query = query.Order("views DESC").Order("id DESC")
	default:
		// recent and unspecified share the same ordering
		query = query.Order("created_at DESC").Order("id DESC")
	}

	var commands []models.Command
	offset := (params.Page - 1) * params.Limit
	if err := query.Offset(offset).Limit(params.Limit).Find(&commands).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list commands: %w", err)
	}
	return commands, total, nil
}

// incrementCounter executes a single atomic "column = column + 1" update.
// column must be one of the fixed counter column names, never caller input.
func (r *GormCommandRepository) incrementCounter(id uint, column string) error {
	result := r.db.Model(&models.Command{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to increment %s for command %d: %w", column, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// readCounter reads back a single counter column after an increment.
func (r *GormCommandRepository) readCounter(id uint, column string) (int, error) {
	var value int
	err := r.db.Model(&models.Command{}).Select(column).Where("id = ?", id).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read %s for command %d: %w", column, id, err)
	}
	return value, nil
}

// IncrementViews adds one view to the command, atomically at the store.
func (r *GormCommandRepository) IncrementViews(id uint) error {
	return r.incrementCounter(id, "views")
}

// IncrementLikes adds one like to the command and returns the new value.
func (r *GormCommandRepository) IncrementLikes(id uint) (int, error) {
	if err := r.incrementCounter(id, "likes"); err != nil {
		return 0, err
	}
	return r.readCounter(id, "likes")
}

// IncrementShares adds one share to the command and returns the new value.
func (r *GormCommandRepository) IncrementShares(id uint) (int, error) {
	if err := r.incrementCounter(id, "shares"); err != nil {
		return 0, err
	}
	return r.readCounter(id, "shares")
}

// Count retourne le nombre total de commandes enregistrées.
func (r *GormCommandRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Command{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count commands: %w", err)
	}
	return count, nil
}

// SumLikes retourne la somme des likes de toutes les commandes (0 si aucune).
func (r *GormCommandRepository) SumLikes() (int64, error) {
	var total int64
	err := r.db.Model(&models.Command{}).Select("COALESCE(SUM(likes), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum likes: %w", err)
	}
	return total, nil
}

// SumShares retourne la somme des shares de toutes les commandes (0 si aucune).
func (r *GormCommandRepository) SumShares() (int64, error) {
	var total int64
	err := r.db.Model(&models.Command{}).Select("COALESCE(SUM(shares), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum shares: %w", err)
	}
	return total, nil
}
