// Package main is the entry point for the PancyGuard Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/commands"
	"github.com/PancyStudios/PancyGuardGo/internal/events"
	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/mqtt"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/PancyStudios/PancyGuardGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System(fmt.Sprintf("Iniciando PancyGuard Go %s (%s)...", config.Version, config.BuildTime), "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var (
		discordClient *discord.ExtendedClient
		backend       store.Backend
	)
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			_ = discordClient.Stop()
		}
		if backend != nil {
			_ = closeStore(backend)
		}
	})

	// Open the record store
	backend, err = store.Open(cfg)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error abriendo el almacenamiento: %v", err), "Main")
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(backend); err != nil {
			logger.Error(fmt.Sprintf("Error cerrando el almacenamiento: %v", err), "Main")
		}
	}()

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Moderation core and its event publishers
	hub := web.NewEventHub()
	svc := moderation.NewService(backend, discord.NewPlatform(discordClient.Session), cfg.DefaultPrefix, hub)
	svc.SetLogChannel(discord.NewLogChannelPublisher(discordClient.Session, svc.Config))
	discordClient.SetModeration(svc)

	// Initialize MQTT
	mqttClientID := "pancyguard"
	if !cfg.IsProd() {
		mqttClientID = "pancyguard_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	svc.AddPublisher(mqtt.NewEventPublisher(mqttClient))
	mqtt.RegisterModerationHandlers(mqttClient, svc)

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook, cfg.AllowedHosts)
	web.SetupAPIRoutes(webServer, &web.API{
		Moderation: svc,
		Store:      backend,
		Bot:        discordClient,
		Hub:        hub,
		Token:      cfg.APIToken,
	})
	webServer.StartAsync(cfg.Port)

	// Register commands and events
	commands.RegisterAll(discordClient, backend)
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func() {
		if err := discordClient.Stop(); err != nil {
			logger.Error(fmt.Sprintf("Error cerrando la sesión de Discord: %v", err), "Main")
		}
	}()

	logger.Success("PancyGuard Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyGuard Go...", "Main")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := webServer.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("Error deteniendo el servidor web: %v", err), "Main")
	}
}

func closeStore(backend store.Backend) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return backend.Close(ctx)
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
