package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"github.com/yourusername/examprep-api/internal/config"
	"github.com/yourusername/examprep-api/internal/handler"
	"github.com/yourusername/examprep-api/internal/middleware"
	pgRepo "github.com/yourusername/examprep-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/examprep-api/internal/repository/redis"
	"github.com/yourusername/examprep-api/internal/service"
	"github.com/yourusername/examprep-api/internal/service/adaptive"
	"github.com/yourusername/examprep-api/pkg/auth"
	"github.com/yourusername/examprep-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	topicRepo := pgRepo.NewTopicRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	testRepo := pgRepo.NewTestSessionRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT-сервис для токенов анонимных сессий
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Настройки адаптивного подбора: дефолты, перекрытые конфигурацией
	adaptiveConfig := adaptive.DefaultConfig()
	if cfg.Adaptive.HistoryLimit > 0 {
		adaptiveConfig.HistoryLimit = cfg.Adaptive.HistoryLimit
	}
	if cfg.Adaptive.RecentWindow > 0 {
		adaptiveConfig.RecentWindow = cfg.Adaptive.RecentWindow
	}
	if cfg.Adaptive.StatsCacheTTLSec > 0 {
		adaptiveConfig.StatsCacheTTL = time.Duration(cfg.Adaptive.StatsCacheTTLSec) * time.Second
	}

	selector := adaptive.NewSelector(adaptiveConfig, &adaptive.Dependencies{
		AttemptRepo:  attemptRepo,
		QuestionRepo: questionRepo,
		CacheRepo:    cacheRepo,
	}, nil)

	// Инициализируем сервисы
	sessionService := service.NewSessionService(userRepo, jwtService)
	questionService := service.NewQuestionService(questionRepo, topicRepo)
	attemptService := service.NewAttemptService(attemptRepo, questionRepo, cacheRepo)
	testService := service.NewTestService(testRepo, attemptRepo)
	statsService := service.NewStatsService(attemptRepo)

	// Клиент OpenAI нужен только для админской экстракции вопросов
	var extractionHandler *handler.ExtractionHandler
	if cfg.OpenAI.APIKey != "" {
		openaiClient := openai.NewClient(cfg.OpenAI.APIKey)
		extractionService := service.NewExtractionService(openaiClient, questionService, service.ExtractionConfig{
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
		})
		extractionHandler = handler.NewExtractionHandler(extractionService)
	} else {
		log.Println("OPENAI_API_KEY не задан, экстракция вопросов из документов отключена")
	}

	// Инициализируем обработчики
	sessionHandler := handler.NewSessionHandler(sessionService)
	questionHandler := handler.NewQuestionHandler(questionService)
	attemptHandler := handler.NewAttemptHandler(attemptService)
	adaptiveHandler := handler.NewAdaptiveHandler(selector)
	testHandler := handler.NewTestHandler(testService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, cfg.Auth.AdminToken)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Создание анонимной сессии — единственный публичный маршрут записи
		api.POST("/sessions", sessionHandler.CreateSession)

		// Темы и вопросы доступны на чтение без аутентификации
		api.GET("/topics", questionHandler.ListTopics)

		questions := api.Group("/questions")
		{
			questions.GET("", questionHandler.ListQuestions)

			questionWithID := questions.Group("/:id")
			questionWithID.Use(middleware.ExtractUintParam("id", "questionID"))
			{
				questionWithID.GET("", questionHandler.GetQuestion)
			}

			// Маршруты управления банком вопросов — только для администратора
			adminQuestions := questions.Group("")
			adminQuestions.Use(authMiddleware.AdminOnly())
			{
				adminQuestions.POST("", questionHandler.CreateQuestion)
				adminQuestions.POST("/import", questionHandler.ImportQuestions)

				adminWithID := adminQuestions.Group("/:id")
				adminWithID.Use(middleware.ExtractUintParam("id", "questionID"))
				{
					adminWithID.DELETE("", questionHandler.DeleteQuestion)
				}
			}
		}

		// Маршруты, требующие токен сессии
		authed := api.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/sessions/me", sessionHandler.GetCurrentUser)

			authed.POST("/attempts", attemptHandler.RecordAttempt)
			authed.GET("/attempts/recent", attemptHandler.GetRecentAttempts)

			adaptiveGroup := authed.Group("/adaptive")
			{
				adaptiveGroup.GET("/next-question", adaptiveHandler.GetNextQuestion)
				adaptiveGroup.GET("/rating", adaptiveHandler.GetRating)
				adaptiveGroup.GET("/weak-topics", adaptiveHandler.GetWeakTopics)
			}

			tests := authed.Group("/tests")
			{
				tests.POST("", testHandler.StartTest)
				tests.GET("", testHandler.ListTests)

				testWithID := tests.Group("/:id")
				testWithID.Use(middleware.ExtractUintParam("id", "testID"))
				{
					testWithID.GET("", testHandler.GetTest)
					testWithID.POST("/complete", testHandler.CompleteTest)
				}
			}

			authed.GET("/stats", statsHandler.GetUserStats)
			authed.GET("/stats/export", statsHandler.ExportUserStats)
		}

		// Экстракция вопросов из документов (админ, только при настроенном OpenAI)
		if extractionHandler != nil {
			adminExtract := api.Group("/admin/questions")
			adminExtract.Use(authMiddleware.AdminOnly())
			{
				adminExtract.POST("/extract", extractionHandler.ExtractFromText)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		// Экстракция через LLM может занимать десятки секунд
		writeTimeout = 120
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждём сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
