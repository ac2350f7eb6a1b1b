package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "adote-facil/docs"
	jwtauth "adote-facil/internal/adapters/auth/jwt"
	"adote-facil/internal/adapters/auth/odin"
	"adote-facil/internal/adapters/auth/password"
	"adote-facil/internal/adapters/pictures/disk"
	mem "adote-facil/internal/adapters/storage/memory"
	pg "adote-facil/internal/adapters/storage/postgres"
	"adote-facil/internal/domain/animals"
	"adote-facil/internal/domain/chats"
	"adote-facil/internal/domain/users"
	"adote-facil/internal/middleware"
	"adote-facil/internal/platform/config"
	"adote-facil/internal/platform/logger"
	"adote-facil/internal/platform/metrics"
	"adote-facil/internal/ports/auth"
	"adote-facil/internal/ports/pictures"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger // nil => Nop

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: reemplaza el verifier elegido por config (Odin o JWT local).
	AuthVerifier auth.AuthVerifier

	// Opcional: si es nil se usa el store en disco de Config.PicturesDir.
	Pictures pictures.Store
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	var (
		userRepo   users.Repository
		animalRepo animals.Repository
		chatRepo   chats.Repository
	)
	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		animalRepo = pg.NewAnimalsRepo(opts.DB)
		chatRepo = pg.NewChatsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		animalRepo = mem.NewAnimalRepo()
		chatRepo = mem.NewChatRepo()
	}

	// Tokens: siempre emitimos JWT local; la verificación puede ser Odin.
	tokens, err := jwtauth.NewManager(cfg.JWTSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, cfg.AppName)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	verifier := opts.AuthVerifier
	localTokens := false
	if verifier == nil {
		if cfg.OdinBaseURL != "" {
			client, err := odin.NewClient(odin.Config{BaseURL: cfg.OdinBaseURL, APIKey: cfg.OdinAPIKey})
			if err != nil {
				return nil, fmt.Errorf("router: %w", err)
			}
			verifier = odin.NewVerifier(client)
		} else {
			verifier = tokens
			localTokens = true
		}
	}

	store := opts.Pictures
	if store == nil {
		ds, err := disk.NewStore(cfg.PicturesDir)
		if err != nil {
			return nil, fmt.Errorf("router: %w", err)
		}
		store = ds
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, password.NewBcrypt(0), tokens, verifier)
	animalsSvc := animals.NewService(animalRepo, animals.Options{AllowAdoptionReversal: cfg.AllowAdoptionReversal})
	chatsSvc := chats.NewService(chatRepo, animalsSvc)

	// Con JWT local además exigimos que el usuario siga existiendo.
	requestVerifier := verifier
	if localTokens {
		requestVerifier = actorVerifier{users: usersSvc}
	}
	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Verifier:         requestVerifier,
		AllowDebugHeader: cfg.DevAuth,
		Logger:           log,
	}))
	// Después de AuthContext para que el log vea el user_id.
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if fs, ok := store.(interface{ Handler() http.Handler }); ok {
		r.Handle(disk.URLPrefix+"*", fs.Handler())
	}

	// Registro y login detrás del rate limit
	limiter := middleware.PerMinute(cfg.LoginRatePerMinute, cfg.LoginRateBurst)
	r.Group(func(pr chi.Router) {
		pr.Use(limiter.Middleware)
		users.RegisterPublicRoutes(pr, usersSvc, log)
	})

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, log)
	animals.RegisterRoutes(r, animalsSvc, store, log)
	chats.RegisterRoutes(r, chatsSvc, log)

	return r, nil
}

// actorVerifier adapta users.Service.ResolveActor a auth.AuthVerifier.
type actorVerifier struct {
	users *users.Service
}

func (v actorVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	actor, err := v.users.ResolveActor(ctx, token)
	if err != nil {
		return auth.Claims{}, err
	}
	return auth.Claims{UserID: actor.UserID}, nil
}
