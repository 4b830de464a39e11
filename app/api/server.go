package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/theautotimes/newsdesk/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	apiAccessKey := cfg.Get().APIAccessKey

	// Catalog endpoints
	r.GET("/articles", handler.GetArticles)
	r.GET("/articles/:id", handler.GetArticle)

	// Engagement endpoints
	r.POST("/articles/:id/upvote", handler.ToggleUpvote)
	r.POST("/articles/:id/save", handler.ToggleSave)
	r.GET("/reading-list", handler.GetReadingList)
	r.GET("/reading-list.bib", handler.GetReadingListBibTeX)

	// Syndication endpoint
	r.GET("/feed.xml", handler.GetFeed)

	// Intake endpoints
	r.POST("/tips", handler.PostTip)
	r.POST("/contact", handler.PostContact)
	r.POST("/newsletter", handler.PostNewsletter)

	// Assistant endpoint
	r.POST("/chat", handler.PostChat)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// API endpoints (conditionally enabled with authentication)
	if apiAccessKey != "" {
		api := r.Group("/api")
		api.Use(authMiddleware(apiAccessKey))
		{
			api.GET("/tips", handler.APIListTips)
			api.GET("/contact-messages", handler.APIListContactMessages)
			api.GET("/subscribers", handler.APIListSubscribers)
			api.POST("/tips/enrich", handler.APIEnrichTips)
		}
		slog.Info("API endpoints enabled with authentication")
	} else {
		slog.Info("API endpoints disabled (API_ACCESS_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"articles":     "/articles",
			"article":      "/articles/<id>",
			"upvote":       "/articles/<id>/upvote (POST)",
			"save":         "/articles/<id>/save (POST)",
			"reading_list": "/reading-list",
			"bibtex":       "/reading-list.bib",
			"feed":         "/feed.xml",
			"tips":         "/tips (POST)",
			"contact":      "/contact (POST)",
			"newsletter":   "/newsletter (POST)",
			"chat":         "/chat (POST)",
			"health":       "/health",
			"stats":        "/stats",
		}

		// Add API endpoints if authentication is enabled
		if apiAccessKey != "" {
			endpoints["api_tips"] = "/api/tips (requires X-API-Key header)"
			endpoints["api_contact_messages"] = "/api/contact-messages (requires X-API-Key header)"
			endpoints["api_subscribers"] = "/api/subscribers (requires X-API-Key header)"
			endpoints["api_enrich"] = "/api/tips/enrich (POST, requires X-API-Key header)"
		}

		c.JSON(200, gin.H{
			"service":     "The Auto Times",
			"version":     cfg.Get().Version,
			"description": "Global automotive news desk with engagement tracking and syndication",
			"endpoints":   endpoints,
			"api_status": map[string]interface{}{
				"enabled":       apiAccessKey != "",
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// Check if API key is provided and matches
		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		// Continue to next middleware/handler
		c.Next()
	}
}
