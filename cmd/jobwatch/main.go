package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"jobwatch/internal/config"
	"jobwatch/internal/notify"
	"jobwatch/internal/scrape"
	"jobwatch/internal/secrets"
	"jobwatch/internal/seen"
)

func main() {
	setToken := flag.String("set-token", "", "store the Telegram bot token in the OS keychain and exit")
	clearToken := flag.Bool("clear-token", false, "remove the Telegram bot token from the OS keychain and exit")
	flag.Parse()

	if *setToken != "" {
		if err := secrets.SetBotToken(*setToken); err != nil {
			log.Fatalf("keychain store failed: %v", err)
		}
		log.Println("Telegram bot token stored in keychain.")
		return
	}
	if *clearToken {
		if err := secrets.DeleteBotToken(); err != nil {
			log.Fatalf("keychain delete failed: %v", err)
		}
		log.Println("Telegram bot token removed from keychain.")
		return
	}

	_ = godotenv.Load()

	// Data dir: use env if provided (the scheduler can pass one), else local.
	dataDir := os.Getenv("JOBWATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal(err)
	}

	store := seen.Load(filepath.Join(dataDir, cfg.App.SeenFile))
	notifier := notify.NewTelegram(secrets.BotToken(), cfg.Telegram.ChatID)

	added := scrape.RunOnce(cfg, store, notifier)
	log.Printf("run complete, new jobs: %d", added)
}
