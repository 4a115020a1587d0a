package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentipost/api/handlers"
	"sentipost/api/middleware"
	"sentipost/api/routes"
	"sentipost/config"
	"sentipost/fetch"
	"sentipost/logger"
	"sentipost/services"
	"sentipost/storage"
	"sentipost/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	conf := config.AppConfig
	logger.Setup(conf.Logs.Level)
	logger.L.Info("Starting server...")

	snapshots, err := storage.Open(conf.Storage)
	if err != nil {
		panic("Failed to open snapshot storage: " + err.Error())
	}
	defer snapshots.Close()

	st := store.New(
		store.WithSnapshots(snapshots),
		store.WithReaderPersistence(conf.Sessions.PersistReader),
		store.WithTagUniqueness(conf.Integrity.EnforceTagUniqueness),
	)

	// Гидратация стора фикстурами; сбой любой коллекции дает пустую
	// коллекцию и не мешает остальным
	client := fetch.NewClient(conf.Data.BaseURL)
	bundle := client.FetchAll(context.Background())
	st.SetUsers(bundle.Users)
	st.SetPosts(bundle.Posts)
	st.SetTags(bundle.Tags)
	st.SetInteractions(bundle.Interactions)
	st.SetComments(bundle.Comments)

	wsManager := services.NewWSConnManager()
	dispatcher := services.NewDispatcher(wsManager)
	if err := dispatcher.ConnectRabbitMQ(conf.RabbitMQ.URL); err != nil {
		logger.L.Warnf("RabbitMQ unavailable, falling back to direct WebSocket: %v", err)
	} else if conf.RabbitMQ.URL != "" {
		if err := dispatcher.StartConsumer(context.Background(), "store_events_ws"); err != nil {
			logger.L.Warnf("Failed to start event consumer: %v", err)
		}
	}
	defer dispatcher.Close()
	dispatcher.Attach(st)

	auth := services.NewAuthService(st)
	api := handlers.New(st, auth, wsManager)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("sentipost"))

	routes.AdminApi(router, api)
	routes.PublicApi(router, api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", conf.Backend.Host, conf.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
