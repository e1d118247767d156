package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/to404hanga/pkg404/logger"
)

const (
	defaultConfigPath = "./config/config.yaml"
	defaultEnvPath    = ".env"
)

func main() {
	cfile := pflag.String("config", defaultConfigPath, "config file path")
	efile := pflag.String("env", defaultEnvPath, "dotenv file path, ignored when missing")
	pflag.Parse()

	// .env 只用于本地开发, 不存在时忽略
	_ = godotenv.Load(*efile)

	viper.SetConfigFile(*cfile)
	if err := viper.ReadInConfig(); err != nil {
		log.Panicf("read config file failed: %v", err)
	}

	app := BuildDependency()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		app.Log.Info("gin server start", logger.String("addr", app.Server.Addr))
		if err := app.Server.Start(); err != nil {
			log.Panicf("gin server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		app.Log.Error("gin server shutdown failed", logger.Error(err))
	}
	app.Close()
	app.Log.Info("gin server stopped")
}
