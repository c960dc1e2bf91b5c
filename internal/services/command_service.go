// Package services contains the business logic layer for the command catalog application
package services

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"time"

	"gorm.io/gorm"

	customerrors "github.com/axellelanca/cmdvault/internal/errors"
	"github.com/axellelanca/cmdvault/internal/models"
	"github.com/axellelanca/cmdvault/internal/repository"
)

// shortIDCharset defines the character set used for generating short ids.
// Lowercase letters and digits give 36^6 ≈ 2.2 billion combinations for
// 6-character ids, and keep ids safe to paste into URLs without escaping.
const shortIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// shortIDLength is the fixed length of generated short ids.
const shortIDLength = 6

// Fallback values applied to optional submission fields.
const (
	DefaultCategory   = "GoatBot"
	DefaultDifficulty = "Intermediate"
)

// DefaultPage and DefaultLimit are the pagination fallbacks for listings.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// SubmitRequest carries one command submission into the ingestion path.
// Name, Author and Code are required; the rest fall back to defaults.
type SubmitRequest struct {
	Name        string
	Author      string
	Code        string
	Description string
	Category    string
	Tags        []string
	Difficulty  string
}

// ListResult is the outcome of a catalog listing: one page of summaries plus
// the pagination totals computed over the filtered set.
type ListResult struct {
	Items      []models.CommandSummary
	Total      int64
	Page       int
	TotalPages int
}

// GlobalStats aggregates catalog-wide counters. ActiveUsers is a placeholder
// kept at 0, no session tracking exists.
type GlobalStats struct {
	TotalCommands int64
	TotalLikes    int64
	TotalShares   int64
	ActiveUsers   int
}

// CommandService provides business logic methods for the command catalog.
// It acts as an intermediary between the HTTP handlers and the data repository.
type CommandService struct {
	commandRepo  repository.CommandRepository
	uploadAPIKey string
}

// NewCommandService creates and returns a new instance of CommandService.
// uploadAPIKey is the process-wide shared secret gating submissions.
func NewCommandService(commandRepo repository.CommandRepository, uploadAPIKey string) *CommandService {
	return &CommandService{
		commandRepo:  commandRepo,
		uploadAPIKey: uploadAPIKey,
	}
}

// GenerateShortID generates a cryptographically secure random short id of the
// given length, drawn uniformly from shortIDCharset. The generator itself does
// not check uniqueness; SubmitCommand handles collisions with a retry loop.
func (s *CommandService) GenerateShortID(length int) (string, error) {
	id := make([]byte, length)
	for i := range id {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortIDCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		id[i] = shortIDCharset[num.Int64()]
	}
	return string(id), nil
}

// ListCommands returns one page of the catalog filtered by the given params.
// Non-positive page or limit values fall back to the defaults; out-of-range
// pages return an empty item list, never an error. Pure read, no side effects.
func (s *CommandService) ListCommands(params models.ListParams) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = DefaultPage
	}
	if params.Limit < 1 {
		params.Limit = DefaultLimit
	}

	commands, total, err := s.commandRepo.List(params)
	if err != nil {
		return nil, err
	}

	items := make([]models.CommandSummary, 0, len(commands))
	for _, command := range commands {
		items = append(items, command.Summary())
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		TotalPages: int((total + int64(params.Limit) - 1) / int64(params.Limit)),
	}, nil
}

// isAllDigits reports whether identifier is non-empty and composed entirely
// of decimal digits.
func isAllDigits(identifier string) bool {
	if identifier == "" {
		return false
	}
	for i := 0; i < len(identifier); i++ {
		if identifier[i] < '0' || identifier[i] > '9' {
			return false
		}
	}
	return true
}

// resolveCommand maps a public identifier to its command. A purely numeric
// identifier is always treated as a primary key, never matched against short
// ids, even when the digits happen to equal one.
func (s *CommandService) resolveCommand(identifier string) (*models.Command, error) {
	var command *models.Command
	var err error
	if isAllDigits(identifier) {
		id, parseErr := strconv.ParseUint(identifier, 10, 32)
		if parseErr != nil {
			// numeric but unrepresentable: no primary key can match
			return nil, customerrors.ErrCommandNotFound
		}
		command, err = s.commandRepo.GetByID(uint(id))
	} else {
		command, err = s.commandRepo.GetByShortID(identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrCommandNotFound
		}
		return nil, err
	}
	return command, nil
}

// fetchWithView atomically counts one view on the command, then reads back the
// row so the returned projection already includes the caller's own view.
func (s *CommandService) fetchWithView(id uint) (*models.CommandDetail, error) {
	if err := s.commandRepo.IncrementViews(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrCommandNotFound
		}
		return nil, err
	}
	command, err := s.commandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	detail := command.Detail()
	return &detail, nil
}

// GetCommandByID returns the full projection of a command looked up strictly
// by primary key, counting the access as one view.
func (s *CommandService) GetCommandByID(id uint) (*models.CommandDetail, error) {
	return s.fetchWithView(id)
}

// LookupCommand resolves a public identifier (numeric id or short id) to the
// full projection, counting the access as one view.
func (s *CommandService) LookupCommand(identifier string) (*models.CommandDetail, error) {
	command, err := s.resolveCommand(identifier)
	if err != nil {
		return nil, err
	}
	return s.fetchWithView(command.ID)
}

// GetRawCode resolves a public identifier and returns the matching command
// without touching its view counter. Callers serve command.Code verbatim.
func (s *CommandService) GetRawCode(identifier string) (*models.Command, error) {
	return s.resolveCommand(identifier)
}

// LikeCommand atomically increments the like counter of the command and
// returns the new value.
func (s *CommandService) LikeCommand(id uint) (int, error) {
	likes, err := s.commandRepo.IncrementLikes(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, customerrors.ErrCommandNotFound
		}
		return 0, err
	}
	return likes, nil
}

// ShareCommand atomically increments the share counter of the command and
// returns the new value.
func (s *CommandService) ShareCommand(id uint) (int, error) {
	shares, err := s.commandRepo.IncrementShares(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, customerrors.ErrCommandNotFound
		}
		return 0, err
	}
	return shares, nil
}

// SubmitCommand validates and persists a new command submission.
// The checks run in a fixed order: credential first, then required fields,
// then name uniqueness. The schema-level unique index on name remains the
// authoritative guard against concurrent submissions; the pre-check only
// exists to return a clean error on the common path.
func (s *CommandService) SubmitCommand(apiKey string, req SubmitRequest) (*models.Command, error) {
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.uploadAPIKey)) != 1 {
		return nil, customerrors.ErrInvalidAPIKey
	}

	if req.Name == "" || req.Author == "" || req.Code == "" {
		return nil, customerrors.ErrMissingFields
	}

	_, err := s.commandRepo.GetByName(req.Name)
	if err == nil {
		return nil, customerrors.ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error checking name uniqueness: %w", err)
	}

	shortID, err := s.generateUniqueShortID()
	if err != nil {
		return nil, err
	}

	command := &models.Command{
		ShortID:     shortID,
		Name:        req.Name,
		Description: req.Description,
		Author:      req.Author,
		Code:        req.Code,
		Category:    req.Category,
		Tags:        models.JoinTags(req.Tags),
		Difficulty:  req.Difficulty,
		CreatedAt:   time.Now(),
	}
	if command.Category == "" {
		command.Category = DefaultCategory
	}
	if command.Difficulty == "" {
		command.Difficulty = DefaultDifficulty
	}

	if err := s.commandRepo.Create(command); err != nil {
		// A concurrent submission may have won the race on the unique name
		// index between the pre-check and the insert.
		if _, lookupErr := s.commandRepo.GetByName(req.Name); lookupErr == nil {
			return nil, customerrors.ErrDuplicateName
		}
		return nil, err
	}

	return command, nil
}

// generateUniqueShortID produces a short id not yet present in the store,
// retrying generation on collision.
func (s *CommandService) generateUniqueShortID() (string, error) {
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		id, err := s.GenerateShortID(shortIDLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate short id: %w", err)
		}

		_, err = s.commandRepo.GetByShortID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return id, nil
			}
			return "", fmt.Errorf("database error checking short id uniqueness: %w", err)
		}

		log.Printf("Short id '%s' already exists, retrying generation (%d/%d)...", id, i+1, maxRetries)
	}

	return "", customerrors.ErrShortIDGenerationFailed
}

// GetGlobalStats computes catalog-wide aggregates. Pure read, no side effects.
func (s *CommandService) GetGlobalStats() (*GlobalStats, error) {
	total, err := s.commandRepo.Count()
	if err != nil {
		return nil, err
	}
	likes, err := s.commandRepo.SumLikes()
	if err != nil {
		return nil, err
	}
	shares, err := s.commandRepo.SumShares()
	if err != nil {
		return nil, err
	}
	return &GlobalStats{
		TotalCommands: total,
		TotalLikes:    likes,
		TotalShares:   shares,
		ActiveUsers:   0,
	}, nil
}
