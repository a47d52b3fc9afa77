package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-Retreat-Survey/docs"
	"Backend-Retreat-Survey/src/config"
	"Backend-Retreat-Survey/src/controllers"
	"Backend-Retreat-Survey/src/database"
	"Backend-Retreat-Survey/src/jobs"
	"Backend-Retreat-Survey/src/logging"
	"Backend-Retreat-Survey/src/models"
	"Backend-Retreat-Survey/src/routes"
	"Backend-Retreat-Survey/src/services/definition"
	"Backend-Retreat-Survey/src/services/submission"
	"Backend-Retreat-Survey/src/services/survey"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
)

// @title        Retreat Survey API
// @version      1.0
// @description  Multi-section wellness retreat survey: sessions, conditional questions, validation and submission.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("[config] %v", err)
	}
	logging.SetDebug(cfg.Debug)

	def, mapper, err := loadSurvey(cfg)
	if err != nil {
		logging.Fatalf("[survey] %v", err)
	}
	// definition and mapping must agree before anyone can submit
	if err := submission.CheckMapping(def, mapper); err != nil {
		logging.Fatalf("[survey] %v", err)
	}

	ctx := context.Background()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	store, err := progressStore(ctx, cfg, &closers)
	if err != nil {
		logging.Fatalf("[database] %v", err)
	}
	sink, err := newSink(ctx, cfg, &closers)
	if err != nil {
		logging.Fatalf("[database] %v", err)
	}

	notifier, worker := confirmationJobs(cfg, &closers)

	pipeline := &submission.Pipeline{
		Sink:     sink,
		Mapper:   mapper,
		SurveyID: cfg.SurveyID,
		Notifier: notifier,
		LockTTL:  cfg.SubmitLockTTL,
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	routes.InitRoutes(app, controllers.NewSurveyController(def, store, pipeline))

	go func() {
		logging.Info("Server is running on port " + cfg.AppURI)
		if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI))); err != nil {
			logging.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Errorf("[server] shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
}

func loadSurvey(cfg config.Config) (*models.SurveyDefinition, submission.StaticMapper, error) {
	var (
		def     *models.SurveyDefinition
		mapping map[string]int
		err     error
	)

	if cfg.DefinitionPath != "" {
		def, err = definition.Load(cfg.DefinitionPath)
	} else {
		def, err = definition.Default()
	}
	if err != nil {
		return nil, nil, err
	}

	if cfg.MappingPath != "" {
		mapping, err = definition.LoadMapping(cfg.MappingPath)
	} else {
		mapping, err = definition.DefaultMapping()
	}
	if err != nil {
		return nil, nil, err
	}

	logging.Infof("[survey] loaded %q sections=%d questions=%d", def.ID, len(def.Sections), len(def.Questions()))
	return def, submission.NewStaticMapper(mapping), nil
}

// progressStore uses Redis when REDIS_URI is set and process memory
// otherwise.
func progressStore(ctx context.Context, cfg config.Config, closers *[]func()) (survey.ProgressStore, error) {
	if cfg.RedisURI == "" {
		logging.Warn("[database] REDIS_URI not set, survey progress is kept in memory only")
		return survey.NewMemoryStore(), nil
	}

	client, err := database.NewRedis(ctx, cfg.RedisURI)
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, func() { _ = client.Close() })
	return survey.NewRedisStore(client, cfg.SessionTTL), nil
}

func newSink(ctx context.Context, cfg config.Config, closers *[]func()) (submission.Sink, error) {
	switch cfg.SinkDriver {
	case config.SinkPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, pool.Close)

		sink := submission.NewPostgresSink(pool)
		if err := sink.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return sink, nil

	default:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = client.Disconnect(context.Background()) })

		sink := submission.NewMongoSink(client.Database(cfg.MongoDB))
		if err := sink.EnsureIndexes(ctx); err != nil {
			logging.Warnf("[database] create response indexes: %v", err)
		}
		return sink, nil
	}
}

// confirmationJobs wires the confirmation email queue. It needs both Redis
// and SMTP; without either, submissions are stored without an email.
func confirmationJobs(cfg config.Config, closers *[]func()) (submission.Notifier, *asynq.Server) {
	if cfg.RedisURI == "" || !cfg.SMTP.Enabled() {
		logging.Warn("[jobs] Redis or SMTP not configured, confirmation emails disabled")
		return nil, nil
	}

	sender, err := jobs.NewSMTPSender(cfg.SMTP)
	if err != nil {
		logging.Warnf("[jobs] %v", err)
		return nil, nil
	}
	opt, err := database.AsynqConnOpt(cfg.RedisURI)
	if err != nil {
		logging.Warnf("[jobs] %v", err)
		return nil, nil
	}

	client := asynq.NewClient(opt)
	*closers = append(*closers, func() { _ = client.Close() })

	worker := jobs.NewServer(opt)
	if err := worker.Start(jobs.NewServeMux(sender)); err != nil {
		logging.Errorf("[jobs] start worker: %v", err)
		return jobs.NewQueueNotifier(client), nil
	}
	logging.Info("[jobs] worker started")
	return jobs.NewQueueNotifier(client), worker
}
