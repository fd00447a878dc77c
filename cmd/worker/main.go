package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"pincheck/internal/config"
	"pincheck/internal/store"
	"pincheck/internal/tasks"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()
	log.Println("Worker connected to store.")

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	collectTask, err := tasks.NewCollectPincodesTask("")
	if err != nil {
		log.Fatalf("Failed to create collect task: %v", err)
	}

	// collect overnight, export once the collection pass has had time to finish
	collectEntry, err := scheduler.Register("0 2 * * *", collectTask, asynq.Queue("default"))
	if err != nil {
		log.Fatalf("Failed to register periodic collect task: %v", err)
	}
	log.Printf("Registered periodic task: %s (EntryID: %s)", collectTask.Type(), collectEntry)

	exportTask, err := tasks.NewExportReportTask("")
	if err != nil {
		log.Fatalf("Failed to create export task: %v", err)
	}

	exportEntry, err := scheduler.Register("0 6 * * *", exportTask, asynq.Queue("default"))
	if err != nil {
		log.Fatalf("Failed to register periodic export task: %v", err)
	}
	log.Printf("Registered periodic task: %s (EntryID: %s)", exportTask.Type(), exportEntry)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
			},
			// collection is deliberately sequential; one job at a time
			Concurrency: 1,
		},
	)

	taskProcessor := tasks.NewTaskProcessor(st, cfg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(
		tasks.TypeTaskCollectPincodes,
		taskProcessor.HandleCollectPincodesTask,
	)

	mux.HandleFunc(
		tasks.TypeTaskExportReport,
		taskProcessor.HandleExportReportTask,
	)

	go func() {
		log.Println("Starting Asynq scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("Could not run Asynq scheduler: %v", err)
		}
	}()

	go func() {
		log.Println("Starting Asynq worker server...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("Could not run Asynq worker server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("Shutdown signal received, shutting down gracefully...")

	scheduler.Shutdown()
	log.Println("Asynq scheduler shut down.")

	srv.Shutdown()
	log.Println("Asynq worker server shut down.")

	asynqClient.Close()
	log.Println("Asynq client closed.")

	log.Println("Worker process shut down complete.")
}
