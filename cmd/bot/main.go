package main

import (
	"os"                       // Signal channel
	"os/signal"                // Interrupt notification
	"questbot/internal/bot"    // Custom package for the Discord bot
	"questbot/internal/config" // Custom package for configuration
	"syscall"                  // Termination signals

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the Discord bot
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The bot cannot run without a token
	if cfg.BotToken == "" {
		logrus.Fatal("BOT_TOKEN is not set")
	}

	// Create the bot against the configured backend
	b, err := bot.New(cfg.BotToken, cfg.APIBaseURL)
	if err != nil {
		logrus.Fatalf("failed to create bot: %v", err)
	}

	// Connect to the gateway and register the command set
	if err := b.Start(); err != nil {
		logrus.Fatalf("failed to start bot: %v", err)
	}
	logrus.WithField("api", cfg.APIBaseURL).Info("Bot is running. Press Ctrl+C to exit.")

	// Block until interrupted
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	// Close the gateway connection on shutdown
	if err := b.Stop(); err != nil {
		logrus.Errorf("failed to close session: %v", err)
	}
	logrus.Info("Bot stopped")
}
