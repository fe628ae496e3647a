package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"fbs/src/boot"
	"fbs/src/config"
	"fbs/src/middlewares"
	"fbs/src/store"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	apiPrefix string = "/api/v1"
)

var timestampValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	return err == nil
}

var gtfield validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	fieldValue, ok := field.Interface().(string)
	if !ok {
		return false
	}
	fielddatetime, err := time.Parse(config.TIME_PARSE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	return datetime.After(fielddatetime)
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timestamp", timestampValidatorFunc)
		v.RegisterValidation("gtdate", gtfield)
	}
}

func setupRouter(st *store.Store) *gin.Engine {
	router := gin.Default()
	if os.Getenv("API_ENV") == "local" {
		router.Use(cors.Default())
	}
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})

	apiv1 := router.Group(apiPrefix)
	apiv1.Use(middlewares.IdentityMiddleware)

	resourceHandlers(apiv1, st)
	bookingHandlers(apiv1, st)
	feedbackHandlers(apiv1, st)

	admin := router.Group(apiPrefix + "/admin")
	admin.Use(middlewares.IdentityMiddleware)
	adminBookingHandlers(admin, st)
	adminResourceHandlers(admin, st)
	adminFeedbackHandlers(admin, st)

	return router
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()
	registerValidators()

	st, err := boot.InitStore(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize store: %s", err)
	}
	if err := boot.InitSweeper(st); err != nil {
		log.Fatalf("Failed to start sweeper: %s", err)
	}

	router := setupRouter(st)

	srv := &http.Server{
		Addr:    config.Env("LISTEN_ADDR", ":9090"),
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	boot.StopScheduler()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %s\n", err.Error())
	}
}
