package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/http/learner_progress_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/callback_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/course_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/exam_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/help_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/menu_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/report_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/resume_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/tests_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/text_handler"
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/voice_handler"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/domain/session"
	"github.com/IT-Nick/tutorbot/internal/infra/config"
	"github.com/IT-Nick/tutorbot/internal/infra/llm"
	"github.com/IT-Nick/tutorbot/internal/infra/metrics"
	"github.com/IT-Nick/tutorbot/internal/infra/speech"
	"github.com/IT-Nick/tutorbot/middleware"
	"github.com/IT-Nick/tutorbot/poller"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	answersRepo "github.com/IT-Nick/tutorbot/internal/domain/answers/repository"
	feedbackRepo "github.com/IT-Nick/tutorbot/internal/domain/feedback/repository"
	feedbackService "github.com/IT-Nick/tutorbot/internal/domain/feedback/service"
	lecturesRepo "github.com/IT-Nick/tutorbot/internal/domain/lectures/repository"
	lecturesService "github.com/IT-Nick/tutorbot/internal/domain/lectures/service"
	msgRepo "github.com/IT-Nick/tutorbot/internal/domain/messages/repository"
	msgService "github.com/IT-Nick/tutorbot/internal/domain/messages/service"
	progressRepo "github.com/IT-Nick/tutorbot/internal/domain/progress/repository"
	questionsRepo "github.com/IT-Nick/tutorbot/internal/domain/questions/repository"
	reportService "github.com/IT-Nick/tutorbot/internal/domain/report/service"
	usersRepo "github.com/IT-Nick/tutorbot/internal/domain/users/repository"
	usersService "github.com/IT-Nick/tutorbot/internal/domain/users/service"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	learnerService  *usersService.LearnerService
	messageService  *msgService.MessageService
	feedbackService *feedbackService.FeedbackService
	reportService   *reportService.ReportService
}

type App struct {
	config *config.Config
	log    *zap.Logger
	bot    *telebot.Bot
	db     *pgxpool.Pool
	server *http.Server

	catalog     *lecturesService.Catalog
	lectures    *lecturesRepo.LectureRepository
	llm         *llm.Client
	machine     *session.Machine
	transcriber *speech.Transcriber

	Services
}

func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	catalog, lectures, client, err := openCourse(cfg, log)
	if err != nil {
		return nil, err
	}

	db, err := InitDatabase(ctx, cfg, log)
	if err != nil {
		lectures.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{
		config:   cfg,
		log:      log,
		db:       db,
		catalog:  catalog,
		lectures: lectures,
		llm:      client,
	}

	app.initServices()

	return app, nil
}

// openCourse загружает учебник, открывает базу лекций и создает клиента языковой модели
func openCourse(cfg *config.Config, log *zap.Logger) (*lecturesService.Catalog, *lecturesRepo.LectureRepository, *llm.Client, error) {
	catalog, err := lecturesService.LoadCatalog(cfg.Lectures.TextbooksDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load textbooks: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Lectures.DBPath), 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create lectures dir: %w", err)
	}
	lectures, err := lecturesRepo.Open(cfg.Lectures.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := llm.New(llm.Config{
		APIKey:             cfg.OpenAI.APIKey,
		BaseURL:            cfg.OpenAI.BaseURL,
		ChatModel:          cfg.OpenAI.ChatModel,
		TranscriptionModel: cfg.OpenAI.TranscriptionModel,
		RequestsPerSecond:  cfg.OpenAI.RequestsPerSecond,
		RetryAttempts:      cfg.OpenAI.RetryAttempts,
	}, log.Named("llm"))
	if err != nil {
		lectures.Close()
		return nil, nil, nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	log.Info("course loaded", zap.Int("chapters", catalog.Len()), zap.String("lectures_db", cfg.Lectures.DBPath))
	return catalog, lectures, client, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() {
	// Инициализация репозиториев
	learnerRepo := usersRepo.NewLearnerRepository(app.db)
	messageRepo := msgRepo.NewMessageRepository(app.db)
	questionRepo := questionsRepo.NewQuestionRepository(app.db)
	answerRepo := answersRepo.NewAnswerRepository(app.db)
	testProgressRepo := progressRepo.NewProgressRepository(app.db)
	recordRepo := feedbackRepo.NewFeedbackRepository(app.db)

	// Инициализация сервисов
	app.learnerService = usersService.NewLearnerService(learnerRepo)
	app.messageService = msgService.NewMessageService(messageRepo, app.log)
	app.feedbackService = feedbackService.NewFeedbackService(app.llm, app.catalog, recordRepo, app.log.Named("feedback"))
	app.reportService = reportService.NewReportService(app.learnerService, answerRepo, app.feedbackService, app.config.ExamTopics)

	app.machine = session.NewMachine(session.Deps{
		Store:    session.NewStore(app.config.Session.StorageType, app.config.Session.File),
		Bank:     questionRepo,
		Ledger:   answerRepo,
		Progress: testProgressRepo,
		Course:   app.catalog,
		Lectures: app.lectures,
		Tutor:    app.feedbackService,
		Log:      app.log.Named("session"),
	})

	app.transcriber = speech.NewTranscriber(
		speech.FFmpegSegmenter{Seconds: app.config.Audio.SegmentSeconds},
		app.llm,
		app.config.Audio.TempDir,
		app.log.Named("speech"),
	)
}

// ListenAndServeTelegram запускает Telegram бота
func (app *App) ListenAndServeTelegram() error {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: poller.NewPoller(app.config),
		OnError: func(err error, c telebot.Context) {
			app.log.Error("telegram handler failed", zap.Error(err))
		},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	app.log.Info("starting telegram bot", zap.String("mode", app.config.TelegramBot.Mode))
	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(
		middleware.Recover(app.log),
		middleware.Logger(app.log),
		middleware.AutoRespond(),
	)
	if app.config.TelegramBot.Debug {
		app.bot.Use(middleware.DebugUserActions(true, func(userID int64) string {
			return session.KindOf(app.machine.State(userID))
		}))
	}

	r := render.NewRenderer(app.config.ExamTopics, app.log.Named("render"))

	start := start_handler.NewStartHandler(app.learnerService, app.messageService, r).GetHandlerFunc()
	menu := menu_handler.NewMenuHandler(app.messageService).GetHandlerFunc()
	help := help_handler.NewHelpHandler(app.messageService).GetHandlerFunc()
	resume := resume_handler.NewResumeHandler(app.machine, r).GetHandlerFunc()
	tests := tests_handler.NewTestsHandler(app.machine, r).GetHandlerFunc()
	exam := exam_handler.NewExamHandler(app.messageService, app.config.ExamTopics).GetHandlerFunc()
	report := report_handler.NewReportHandler(app.learnerService, app.reportService, app.messageService, r).GetHandlerFunc()
	voice := voice_handler.NewVoiceHandler(app.machine, app.transcriber, app.config.Audio.TempDir, r, app.log.Named("voice")).GetHandlerFunc()

	// Команды
	app.bot.Handle("/start", start)
	app.bot.Handle("/menu", menu)
	app.bot.Handle("/help", help)
	app.bot.Handle("/resume", resume)
	app.bot.Handle("/tests", tests)
	app.bot.Handle("/report", report)

	// Кнопки главного меню
	app.bot.Handle(model.MenuCommand, menu)
	app.bot.Handle(model.MenuBack, menu)
	app.bot.Handle(model.MenuHelp, help)
	app.bot.Handle(model.MenuCourse, course_handler.NewCourseHandler(app.machine, r).GetHandlerFunc())
	app.bot.Handle(model.MenuResume, resume)
	app.bot.Handle(model.MenuTests, tests)
	app.bot.Handle(model.MenuExam, exam)
	app.bot.Handle(model.MenuTopics, exam)
	app.bot.Handle(model.MenuReport, report)

	// Все inline-кнопки приходят сюда, данные разбираются по префиксу
	app.bot.Handle(telebot.OnCallback, callback_handler.NewCallbackHandler(app.machine, app.messageService, r, app.log).GetHandlerFunc())

	app.bot.Handle(telebot.OnText, text_handler.NewTextHandler(app.machine, app.config.ExamTopics, r).GetHandlerFunc())
	app.bot.Handle(telebot.OnVoice, voice)
	app.bot.Handle(telebot.OnAudio, voice)
}

// newHTTPServer собирает HTTP сервер метрик и отчетов
func (app *App) newHTTPServer() *http.Server {
	mx := http.NewServeMux()

	mx.Handle("GET /metrics", metrics.Handler())
	mx.HandleFunc("GET /healthz", app.healthz)
	mx.Handle("GET /learners/{id}/progress", learner_progress_handler.NewLearnerProgressHandler(app.reportService, app.log))

	return &http.Server{
		Addr:              app.config.HTTPAddr(),
		Handler:           mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (app *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := app.db.Ping(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ListenAndServe запускает бота и HTTP сервер и работает до отмены ctx
func (app *App) ListenAndServe(ctx context.Context) error {
	// Запускаем Telegram бота
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	// Запускаем HTTP сервер
	app.server = app.newHTTPServer()
	app.log.Info("starting http server", zap.String("addr", app.server.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		app.log.Info("shutting down")
	case err = <-errCh:
		err = fmt.Errorf("failed to start HTTP server: %w", err)
	}

	app.shutdown()
	return err
}

func (app *App) shutdown() {
	if app.bot != nil {
		app.bot.Stop()
	}

	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			app.log.Warn("http server shutdown failed", zap.Error(err))
		}
	}

	app.Close()
}

// Close закрывает соединения с базами
func (app *App) Close() {
	if app.db != nil {
		app.db.Close()
	}
	if app.lectures != nil {
		if err := app.lectures.Close(); err != nil {
			app.log.Warn("failed to close lectures db", zap.Error(err))
		}
	}
}

// PrepareLectures готовит лекции для порций учебника без обращения к Telegram и Postgres
func PrepareLectures(ctx context.Context, cfg *config.Config, log *zap.Logger, chapter string, force bool) (lecturesService.PrepareStats, error) {
	catalog, lectures, client, err := openCourse(cfg, log)
	if err != nil {
		return lecturesService.PrepareStats{}, err
	}
	defer lectures.Close()

	return lecturesService.NewPreparer(catalog, lectures, client, log.Named("preparer")).Prepare(ctx, chapter, force)
}
