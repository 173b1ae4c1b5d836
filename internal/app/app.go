package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	httpx "github.com/yungbote/coursechat-backend/internal/http"
	httpH "github.com/yungbote/coursechat-backend/internal/http/handlers"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/catalog"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/resolve"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/richtext"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/selection"
	"github.com/yungbote/coursechat-backend/internal/modules/progress"
	"github.com/yungbote/coursechat-backend/internal/observability"
	"github.com/yungbote/coursechat-backend/internal/platform/llm"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
	"github.com/yungbote/coursechat-backend/internal/services"
)

type App struct {
	Log       *logger.Logger
	Cfg       Config
	Catalog   *catalog.Catalog
	Store     docstore.Store
	Grounding grounding.Usecases
	Router    *gin.Engine
	Metrics   *observability.Metrics

	server       *httpx.Server
	otelShutdown func(context.Context) error
}

// New wires the service from environment config. provider may be nil, in
// which case it is built from LLM_PROVIDER.
func New(ctx context.Context, log *logger.Logger, provider llm.Provider) (*App, error) {
	cfg := LoadConfig(log)
	if provider == nil {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		p, err := NewProvider(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("init llm provider: %w", err)
		}
		provider = p
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})
	metrics := observability.Init(log)

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load course catalog: %w", err)
	}
	log.Info("course catalog loaded",
		"course", cat.CourseName(),
		"path", cfg.CatalogPath,
		"lessons", cat.LessonCount(),
		"materials", len(cat.Materials()),
	)

	store, err := OpenDocstore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open docstore: %w", err)
	}
	store = instrumentDocstore(cfg.DocstoreBackend, store, metrics)

	a := &App{
		Log:          log,
		Cfg:          cfg,
		Catalog:      cat,
		Store:        store,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}
	a.Grounding = wireGrounding(cfg, cat, store, provider, log)
	a.server = httpx.NewServer(httpx.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.ServiceName,
		CORSOrigins:      cfg.CORSOrigins,
		GroundingHandler: httpH.NewGroundingHandler(a.Grounding, richtext.NewNormalizer(log), log),
		CatalogHandler:   httpH.NewCatalogHandler(cat),
		HealthHandler:    httpH.NewHealthHandler(healthDeps(store)),
	})
	a.Router = a.server.Engine
	return a, nil
}

func wireGrounding(cfg Config, cat *catalog.Catalog, store docstore.Store, provider llm.Provider, log *logger.Logger) grounding.Usecases {
	corrections := make([]services.NameCorrection, 0, len(cat.NameCorrections()))
	for _, nc := range cat.NameCorrections() {
		corrections = append(corrections, services.NameCorrection{From: nc.From, To: nc.To})
	}
	completion := services.NewCompletionService(provider, services.CompletionConfig{
		HistoryWindow:   cfg.HistoryWindow,
		MaxTokens:       cfg.MaxTokens,
		NameCorrections: corrections,
	}, log)

	tracker := progress.NewTracker(store, cat.CourseRun(), log)
	return grounding.New(grounding.UsecasesDeps{
		Log:      log.With("module", "grounding"),
		Catalog:  cat,
		Selector: selection.New(cat, selection.RandomChooser, log),
		Resolver: resolve.New(store, tracker, resolve.Config{
			SiteBaseURL:           cat.SiteBaseURL(),
			ExcludedChapterMarker: cat.ExcludedChapterMarker(),
		}, log),
		Completion:      completion,
		ClassifierModel: cfg.ClassifierModel,
		GeneratorModel:  cfg.GeneratorModel,
		MaxTokens:       cfg.MaxTokens,
		ResolveParallel: cfg.ResolveParallel,
	})
}

func healthDeps(store docstore.Store) map[string]httpH.Pinger {
	if p, ok := store.(httpH.Pinger); ok {
		return map[string]httpH.Pinger{"docstore": p}
	}
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("http server listening", "addr", a.Cfg.HTTPAddr)
	return a.server.Run(ctx, a.Cfg.HTTPAddr)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("docstore close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
