package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"gamifyiq-backend/internal/ai"
	"gamifyiq-backend/internal/config"
	"gamifyiq-backend/internal/db"
	"gamifyiq-backend/internal/llm"
	"gamifyiq-backend/internal/model"
	"gamifyiq-backend/internal/repository"
	"gamifyiq-backend/internal/service"
	"gamifyiq-backend/pkg/middleware"
	"gamifyiq-backend/utilities"
)

func main() {
	printStartUpBanner()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utilities.SetupLogging("working/logs")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.xml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize DB using the loaded config and run migrations.
	db.InitDBFromConfig(cfg)
	err = db.GetDB().AutoMigrate(
		&model.User{},
		&model.Document{},
		&model.Game{},
		&model.Scenario{},
		&model.GameSession{},
		&model.AnswerRecord{},
		&model.Certificate{},
	)
	if err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Create repositories.
	userRepo := repository.NewUserRepository()
	documentRepo := repository.NewDocumentRepository()
	gameRepo := repository.NewGameRepository()
	sessionRepo := repository.NewSessionRepository()

	// Build the LLM completion client and the generation pipeline.
	llmClient := buildCompletionClient(cfg)
	generator := ai.NewScenarioGenerator(llmClient)

	// Create services.
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	documentService := service.NewDocumentService(documentRepo, cfg.Upload.MaxFileSizeMB)
	gameService := service.NewGameService(gameRepo, documentRepo, generator, ai.ProcessingOptions{
		ScenarioCount: cfg.LLM.ScenarioCount,
		Difficulty:    cfg.LLM.Difficulty,
	})
	sessionService := service.NewSessionService(sessionRepo, gameRepo)
	certificateService := service.NewCertificateService(sessionRepo, gameRepo, userRepo)

	// Wire asynchronous listeners: upload -> game generation,
	// session completion -> certificate.
	service.InitGameEventListeners(gameService)
	service.InitCertificateEventListeners(certificateService)

	if cfg.DB.Initialize {
		seedSampleData(userRepo, documentRepo)
	}

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	r.Use(utilities.AuthMiddleware())

	// Auth routes.
	auth := r.Group("/auth")
	{
		auth.POST("/register", func(c *gin.Context) {
			var user model.User
			if err := c.ShouldBindJSON(&user); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			if err := authService.Register(&user); err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
		})

		auth.POST("/login", func(c *gin.Context) {
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&creds); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			user, err := authService.Login(creds.Email, creds.Password)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			accessToken, refreshToken, err := utilities.GenerateTokens(user)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate tokens"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"user":          user,
				"access_token":  accessToken,
				"refresh_token": refreshToken,
			})
		})

		auth.POST("/refresh", func(c *gin.Context) {
			var body struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			accessToken, refreshToken, err := utilities.RefreshTokens(body.RefreshToken)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"access_token":  accessToken,
				"refresh_token": refreshToken,
			})
		})
	}

	// User routes.
	r.GET("/users", utilities.RequireAdmin(), func(c *gin.Context) {
		users, err := userService.GetAllUsers()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, users)
	})
	r.GET("/users/:id/profile", func(c *gin.Context) {
		userID, ok := parseID(c)
		if !ok {
			return
		}
		profile, err := userService.GetProfile(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, profile)
	})
	r.PUT("/users/:id/profile", func(c *gin.Context) {
		userID, ok := parseID(c)
		if !ok {
			return
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		user, err := userService.UpdateProfile(userID, body.Name)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	})
	r.GET("/users/:id/progress", func(c *gin.Context) {
		userID, ok := parseID(c)
		if !ok {
			return
		}
		progress, err := service.GenerateProgressData(db.GetDB(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, progress)
	})
	// Progress for the caller's own account.
	r.GET("/progress", func(c *gin.Context) {
		progress, err := service.GenerateProgressData(db.GetDB(), c.GetUint("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, progress)
	})

	// Document routes.
	documents := r.Group("/documents")
	{
		documents.POST("", utilities.RequireAdmin(), func(c *gin.Context) {
			var upload service.DocumentUpload
			if err := c.ShouldBindJSON(&upload); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			document, err := documentService.UploadDocument(upload, c.GetUint("user_id"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusCreated, gin.H{
				"document": document,
				"message":  "Document uploaded successfully and queued for processing",
			})
		})

		documents.GET("", func(c *gin.Context) {
			page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
			filter := repository.DocumentFilter{
				Status:   c.Query("status"),
				Search:   c.Query("search"),
				Page:     page,
				PageSize: cfg.Pagination.PageSize,
			}
			docs, err := documentService.GetDocuments(filter)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, docs)
		})

		documents.GET("/:id", func(c *gin.Context) {
			documentID, ok := parseID(c)
			if !ok {
				return
			}
			document, err := documentService.GetDocumentByID(documentID)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, document)
		})

		documents.DELETE("/:id", utilities.RequireAdmin(), func(c *gin.Context) {
			documentID, ok := parseID(c)
			if !ok {
				return
			}
			if err := documentService.DeleteDocument(documentID); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
		})

		// Manual regeneration; each call costs two LLM round trips.
		documents.POST("/:id/generate",
			utilities.RequireAdmin(),
			middleware.RateLimitMiddleware(rate.Every(10*time.Second), 3),
			func(c *gin.Context) {
				documentID, ok := parseID(c)
				if !ok {
					return
				}
				var opts ai.ProcessingOptions
				if c.Request.ContentLength > 0 {
					if err := c.ShouldBindJSON(&opts); err != nil {
						c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
						return
					}
				}
				game, err := gameService.GenerateGameFromDocument(documentID, opts)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusCreated, game)
			})
	}

	// Game routes.
	games := r.Group("/games")
	{
		games.GET("", func(c *gin.Context) {
			result, err := gameService.GetGames(c.Query("status"))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, result)
		})

		games.GET("/:id", func(c *gin.Context) {
			gameID, ok := parseID(c)
			if !ok {
				return
			}
			role := c.GetString("role")
			includeAnswers := role == model.RoleAdmin || role == model.RoleManager
			game, err := gameService.GetGameByID(gameID, includeAnswers)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, game)
		})

		games.POST("/:id/activate", utilities.RequireAdmin(), func(c *gin.Context) {
			gameID, ok := parseID(c)
			if !ok {
				return
			}
			if err := gameService.ActivateGame(gameID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Game activated"})
		})

		games.POST("/:id/archive", utilities.RequireAdmin(), func(c *gin.Context) {
			gameID, ok := parseID(c)
			if !ok {
				return
			}
			if err := gameService.ArchiveGame(gameID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Game archived"})
		})
	}

	// Session routes.
	sessions := r.Group("/sessions")
	{
		sessions.POST("", func(c *gin.Context) {
			var body struct {
				GameID uint `json:"game_id" binding:"required"`
			}
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			session, err := sessionService.CreateSession(body.GameID, c.GetUint("user_id"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusCreated, session)
		})

		sessions.GET("/:id", func(c *gin.Context) {
			session, err := sessionService.GetSession(c.Param("id"))
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, session)
		})

		sessions.POST("/:id/answers", func(c *gin.Context) {
			var body struct {
				ScenarioID     uint  `json:"scenario_id" binding:"required"`
				SelectedAnswer *int  `json:"selected_answer" binding:"required"`
				TimeTakenMs    int64 `json:"time_taken_ms"`
			}
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			result, err := sessionService.SubmitAnswer(c.Param("id"), body.ScenarioID, *body.SelectedAnswer, body.TimeTakenMs)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, result)
		})

		sessions.POST("/:id/complete", func(c *gin.Context) {
			summary, err := sessionService.CompleteSession(c.Param("id"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, summary)
		})
	}

	// Certificate routes.
	r.GET("/sessions/:id/certificate", func(c *gin.Context) {
		session, err := sessionService.GetSession(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		certificate, err := certificateService.GetCertificateBySession(session.ID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, certificate)
	})
	r.Static("/certificates", "working/certificates")

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// buildCompletionClient picks the configured LLM provider.
func buildCompletionClient(cfg *config.APIConfig) llm.CompletionClient {
	opts := llm.Options{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	if cfg.LLM.Provider == "openai" {
		client, err := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"), cfg.LLM.OpenAIBaseURL, opts)
		if err != nil {
			log.Fatalf("failed to build OpenAI client: %v", err)
		}
		return client
	}
	return llm.NewOllamaClient(cfg.LLM.OllamaURL, opts)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("GAMIFYIQ", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("GAMIFYIQ API (v%s)\n\n", "1.0.0")
}
