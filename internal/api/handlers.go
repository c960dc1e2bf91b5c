package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	customerrors "github.com/axellelanca/cmdvault/internal/errors"
	"github.com/axellelanca/cmdvault/internal/models"
	"github.com/axellelanca/cmdvault/internal/services"
	"github.com/gin-gonic/gin"
)

// AccessEventsChannel is the global channel used to send access events.
// This channel enables asynchronous access auditing without blocking reads.
var AccessEventsChannel chan models.AccessEvent

// SetupRoutes configures all Gin API routes and injects necessary dependencies.
// Parameters:
//   - router: Gin engine instance to configure routes on
//   - commandService: business logic service for catalog operations
//   - bufferSize: size of the access events channel buffer for async auditing
func SetupRoutes(router *gin.Engine, commandService *services.CommandService, bufferSize int) {
	if AccessEventsChannel == nil {
		AccessEventsChannel = make(chan models.AccessEvent, bufferSize)
	}

	// Health Check Route - used for monitoring service availability
	router.GET("/health", HealthCheckHandler)

	// API Routes Group - catalog endpoints under /api prefix
	api := router.Group("/api")
	{
		// Listing and submission
		api.GET("/items", ListItemsHandler(commandService))
		api.POST("/items", UploadItemHandler(commandService))
		// Single-command reads
		api.GET("/item/:id", GetItemHandler(commandService))
		api.GET("/lookup/:identifier", LookupItemHandler(commandService))
		// Engagement counters
		api.POST("/items/:id/like", LikeItemHandler(commandService))
		api.POST("/items/:id/share", ShareItemHandler(commandService))
		// Catalog-wide aggregates
		api.GET("/stats", StatsHandler(commandService))
	}

	// Raw snippet route at root level, serves the snippet body as plain text
	router.GET("/raw/:identifier", RawCodeHandler(commandService))
}

// HealthCheckHandler handles the /health route to verify service status
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadItemRequest represents the JSON request body for submitting a command.
// itemName, authorName and code are required; the remaining fields fall back
// to catalog defaults when omitted.
type UploadItemRequest struct {
	ItemName    string   `json:"itemName"`
	AuthorName  string   `json:"authorName"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Difficulty  string   `json:"difficulty"`
}

// ListItemsHandler handles the paginated, filterable catalog listing.
// Query parameters: page, limit, search, category, filter (trending|recent).
// Degenerate inputs produce empty results, never errors.
func ListItemsHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		result, err := commandService.ListCommands(models.ListParams{
			Page:     page,
			Limit:    limit,
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Filter:   c.Query("filter"),
		})
		if err != nil {
			log.Printf("Error listing commands: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":      result.Items,
			"total":      result.Total,
			"page":       result.Page,
			"totalPages": result.TotalPages,
		})
	}
}

// GetItemHandler handles the numeric-id read path. A successful read counts
// as one view and returns the full projection including the snippet body.
func GetItemHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Command not found"})
			return
		}

		detail, err := commandService.GetCommandByID(uint(id))
		if err != nil {
			respondCommandError(c, err, uint(id))
			return
		}

		queueAccessEvent(c, detail.ID, models.AccessFull)
		c.JSON(http.StatusOK, detail)
	}
}

// LookupItemHandler resolves a public identifier (numeric id or short id) and
// returns the full projection, counting the read as one view.
func LookupItemHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.Param("identifier")

		detail, err := commandService.LookupCommand(identifier)
		if err != nil {
			respondCommandError(c, err, 0)
			return
		}

		queueAccessEvent(c, detail.ID, models.AccessFull)
		c.JSON(http.StatusOK, detail)
	}
}

// RawCodeHandler serves the snippet body verbatim as plain text. It never
// touches the view counter.
func RawCodeHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.Param("identifier")

		command, err := commandService.GetRawCode(identifier)
		if err != nil {
			respondCommandError(c, err, 0)
			return
		}

		queueAccessEvent(c, command.ID, models.AccessRaw)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(command.Code))
	}
}

// StatsHandler returns catalog-wide aggregates.
func StatsHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := commandService.GetGlobalStats()
		if err != nil {
			log.Printf("Error retrieving global stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalCommands": stats.TotalCommands,
			"totalLikes":    stats.TotalLikes,
			"totalShares":   stats.TotalShares,
			"activeUsers":   stats.ActiveUsers,
		})
	}
}

// LikeItemHandler increments the like counter of a command and returns the
// new value.
func LikeItemHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Command not found"})
			return
		}

		likes, err := commandService.LikeCommand(uint(id))
		if err != nil {
			respondCommandError(c, err, uint(id))
			return
		}

		c.JSON(http.StatusOK, gin.H{"likes": likes})
	}
}

// ShareItemHandler increments the share counter of a command and returns the
// new value.
func ShareItemHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Command not found"})
			return
		}

		shares, err := commandService.ShareCommand(uint(id))
		if err != nil {
			respondCommandError(c, err, uint(id))
			return
		}

		c.JSON(http.StatusOK, gin.H{"shares": shares})
	}
}

// UploadItemHandler handles command submissions gated by the X-API-Key header.
// A bind failure is not rejected here: the zero-valued request flows into the
// service so the credential check always runs before any payload validation
// becomes observable.
func UploadItemHandler(commandService *services.CommandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")

		var req UploadItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			req = UploadItemRequest{}
		}

		command, err := commandService.SubmitCommand(apiKey, services.SubmitRequest{
			Name:        req.ItemName,
			Author:      req.AuthorName,
			Code:        req.Code,
			Description: req.Description,
			Category:    req.Category,
			Tags:        req.Tags,
			Difficulty:  req.Difficulty,
		})
		if err != nil {
			switch {
			case errors.Is(err, customerrors.ErrInvalidAPIKey):
				c.JSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
			case errors.Is(err, customerrors.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			case errors.Is(err, customerrors.ErrDuplicateName):
				c.JSON(http.StatusConflict, gin.H{"error": "A command with this name already exists"})
			case errors.Is(err, customerrors.ErrShortIDGenerationFailed):
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to generate unique short id. Please try again later."})
			default:
				log.Printf("Error submitting command: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit command"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"itemId":  command.ID,
			"shortId": command.ShortID,
			"message": "Upload successful",
		})
	}
}

// respondCommandError maps service errors onto HTTP responses.
func respondCommandError(c *gin.Context, err error, id uint) {
	if errors.Is(err, customerrors.ErrCommandNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Command not found"})
		return
	}
	log.Printf("Error retrieving command (id=%d): %v", id, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// queueAccessEvent sends an access event to the audit channel without ever
// blocking the response. A full buffer drops the event.
func queueAccessEvent(c *gin.Context, commandID uint, kind models.AccessKind) {
	if AccessEventsChannel == nil {
		return
	}

	event := models.AccessEvent{
		CommandID: commandID,
		Kind:      kind,
		Timestamp: time.Now(),
		UserAgent: c.GetHeader("User-Agent"),
		IPAddress: c.ClientIP(),
	}

	select {
	case AccessEventsChannel <- event:
	default:
		log.Printf("WARNING: AccessEventsChannel is full, dropping %s access event for command %d", kind, commandID)
	}
}
