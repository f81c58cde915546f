// @title         Itinerary API
// @version       0.1.0
// @description   Field extraction and normalization for carrier itineraries

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"itinerary/internal/core/rulepack"
	"itinerary/internal/modkit"
	"itinerary/internal/modkit/module"
	"itinerary/internal/platform/config"
	"itinerary/internal/platform/logger"
	phttp "itinerary/internal/platform/net/http"
	"itinerary/internal/platform/store"
	"itinerary/internal/services/api"
	nsdom "itinerary/internal/services/nightshift/domain"
	nsmod "itinerary/internal/services/nightshift/module"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	log := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.New(), log); err != nil {
		log.Error().Err(err).Msg("itinerary-api stopped")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, root config.Conf, log *logger.Logger) error {
	core := root.Prefix("CORE_")
	apiCfg := core.Prefix("API_")

	pack, err := rulepack.Load()
	if err != nil {
		return err
	}
	log.Info().Int("pack_version", pack.Version).Msg("rule pack loaded")

	st, err := store.Open(ctx, store.Config{
		Artifacts: store.ArtifactsConfig{
			Enabled: core.MayBool("ARTIFACTS_ENABLED", true),
			Dir:     core.MayString("ARTIFACTS_DIR", "./output"),
			MaxAge:  core.MayDuration("ARTIFACTS_MAX_AGE", 0),
		},
	}, store.WithLogger(log.With().Str("component", "store").Logger()))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	// retention runs beside the server and stops with ctx
	ns := nsmod.Register(modkit.Deps{Log: *log, Cfg: root, Artifacts: st.Artifacts})
	go func() { _ = module.MustPortsOf[nsdom.RunnerPort](ns).Run(ctx) }()

	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Core:           core,
		Store:          st,
		Pack:           pack,
		Logger:         log,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	log.Info().Str("addr", srv.Addr()).Msg("itinerary-api listening")
	return srv.Run(ctx)
}
