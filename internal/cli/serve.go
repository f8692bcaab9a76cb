package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contesthub/internal/api"
	"contesthub/internal/app/judge"
	"contesthub/internal/app/service"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/repository"
	"contesthub/internal/platform/cache"
	"contesthub/internal/platform/config"
	"contesthub/internal/platform/database"
	"contesthub/internal/platform/logger"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func runServer() {
	config.Load()
	logger.InitLogger()
	defer logger.SyncLogger()
	security.InitJWT()

	database.Connect()
	defer database.Close()

	cache.ConnectRedis()
	defer cache.CloseRedis()

	userRepo := repository.NewPgUserRepository(database.DB)
	contestRepo := repository.NewPgContestRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	var judgeClient judge.Client
	switch config.AppConfig.JudgeMode {
	case "http":
		judgeClient = judge.NewHTTPClient(config.AppConfig.JudgeURL, config.AppConfig.JudgeTimeout)
	default:
		judgeClient = judge.NewStubClient()
	}

	locks := cache.NewKeyLock(cache.RDB,
		config.AppConfig.SubmissionLock.KeyPrefix,
		time.Duration(config.AppConfig.SubmissionLock.TTLSeconds)*time.Second)

	authService := service.NewAuthService(userRepo)
	contestService := service.NewContestService(contestRepo, database.DB)
	submissionService := service.NewSubmissionService(contestRepo, submissionRepo, judgeClient, locks, nil)
	leaderboardService := service.NewLeaderboardService(contestRepo, submissionRepo)

	router := api.NewRouter(authService, contestService, submissionService, leaderboardService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully.")
}
