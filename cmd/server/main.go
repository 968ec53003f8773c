package main

import (
	"net/http"

	muxHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mvrilo/go-redoc"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/config"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/auth"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/db"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/handlers"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/middlewares"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

func main() {
	// Load config and init systems
	cfg := config.LoadConfig()
	log.InitLogger()

	// API Docs
	doc := &redoc.Redoc{
		Title:       "Track-in-Train API",
		Description: "HR personnel tracking: profiles, comments, transport routes & live notifications",
		SpecFile:    "./cmd/server/docs/swagger.json",
		SpecPath:    "/swagger/doc.json",
		DocsPath:    "/docs",
	}

	// DB init
	db.InitDB(cfg)

	// Router & CORS
	r := mux.NewRouter()
	cors := muxHandlers.CORS(
		muxHandlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		muxHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		muxHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		muxHandlers.AllowCredentials(),
	)

	// JWT keys
	privateKey, err := auth.LoadPrivateKey(cfg.PrivateKeyPath)
	if err != nil {
		log.Logger.Fatal().Err(err).Msg("failed to load private key")
	}
	publicKey, err := auth.LoadPublicKey(cfg.PublicKeyPath)
	if err != nil {
		log.Logger.Fatal().Err(err).Msg("failed to load public key")
	}

	// Realtime core: one registry, injected into the stream handler and
	// the dispatcher.
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry)

	// Repos & services
	userRepo := repository.NewUserRepository(db.MasterDB)
	profileRepo := repository.NewProfileRepository(db.MasterDB)
	commentRepo := repository.NewCommentRepository(db.MasterDB)
	activityRepo := repository.NewActivityRepository(db.MasterDB)
	transportRepo := repository.NewTransportRepository(db.MasterDB)
	notifRepo := repository.NewNotificationRepo(db.MasterDB)
	prefsRepo := repository.NewNotificationPreferencesRepo(db.MasterDB)

	activitySvc := services.NewActivityService(activityRepo)
	emailSvc := services.NewEmailService(cfg)
	notifSvc := services.NewNotificationService(notifRepo, dispatcher)
	prefsSvc := services.NewNotificationPreferencesService(prefsRepo)
	userSvc := services.NewUserService(userRepo, activitySvc, emailSvc)
	profileSvc := services.NewProfileService(profileRepo, activitySvc, notifSvc)
	commentSvc := services.NewCommentService(commentRepo, userRepo, prefsRepo, activitySvc, notifSvc, emailSvc)
	transportSvc := services.NewTransportService(transportRepo, activitySvc, notifSvc)

	// Middlewares
	userAuth := middlewares.RequireUserAuth(publicKey)
	adminOnly := middlewares.RequireRoles("SuperAdmin", "Admin")
	hrOrAbove := middlewares.RequireRoles("SuperAdmin", "Admin", "HR")

	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.PrometheusMetricsMiddleware)

	// Health & docs
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc(doc.SpecPath, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, doc.SpecFile)
	}).Methods("GET")
	r.Handle(doc.DocsPath, doc.Handler()).Methods("GET")

	// ==== AUTH ====
	authHandler := handlers.NewAuthHandler(userSvc, cfg, privateKey, publicKey)
	r.Handle("/api/v1/auth/login", middlewares.RateLimitPerClient(http.HandlerFunc(authHandler.Login))).Methods("POST")
	r.HandleFunc("/api/v1/auth/refresh", authHandler.Refresh).Methods("POST")
	r.Handle("/api/v1/auth/me", userAuth(http.HandlerFunc(authHandler.Me))).Methods("GET")
	r.Handle("/api/v1/auth/logout", userAuth(http.HandlerFunc(authHandler.Logout))).Methods("POST")

	// ==== USER ADMIN ====
	userHandler := handlers.NewUserHandler(userSvc)
	r.Handle("/api/v1/admin/users", userAuth(adminOnly(http.HandlerFunc(userHandler.Create)))).Methods("POST")
	r.Handle("/api/v1/admin/users", userAuth(adminOnly(http.HandlerFunc(userHandler.List)))).Methods("GET")
	r.Handle("/api/v1/admin/users/{id}", userAuth(adminOnly(http.HandlerFunc(userHandler.Get)))).Methods("GET")
	r.Handle("/api/v1/admin/users/{id}", userAuth(adminOnly(http.HandlerFunc(userHandler.Update)))).Methods("PUT")
	r.Handle("/api/v1/admin/users/{id}", userAuth(adminOnly(http.HandlerFunc(userHandler.Delete)))).Methods("DELETE")

	// ==== PROFILES ====
	profileHandler := handlers.NewProfileHandler(profileSvc)
	r.Handle("/api/v1/profiles", userAuth(hrOrAbove(http.HandlerFunc(profileHandler.Create)))).Methods("POST")
	r.Handle("/api/v1/profiles", userAuth(http.HandlerFunc(profileHandler.List))).Methods("GET")
	r.Handle("/api/v1/profiles/{id}", userAuth(http.HandlerFunc(profileHandler.Get))).Methods("GET")
	r.Handle("/api/v1/profiles/{id}", userAuth(hrOrAbove(http.HandlerFunc(profileHandler.Update)))).Methods("PUT")
	r.Handle("/api/v1/profiles/{id}", userAuth(adminOnly(http.HandlerFunc(profileHandler.Delete)))).Methods("DELETE")

	// ==== COMMENTS ====
	commentHandler := handlers.NewCommentHandler(commentSvc)
	r.Handle("/api/v1/profiles/{id}/comments", userAuth(http.HandlerFunc(commentHandler.Add))).Methods("POST")
	r.Handle("/api/v1/profiles/{id}/comments", userAuth(http.HandlerFunc(commentHandler.List))).Methods("GET")

	// ==== ACTIVITY ====
	activityHandler := handlers.NewActivityHandler(activitySvc)
	r.Handle("/api/v1/admin/activity", userAuth(adminOnly(http.HandlerFunc(activityHandler.List)))).Methods("GET")

	// ==== TRANSPORT ====
	transportHandler := handlers.NewTransportHandler(transportSvc)
	r.Handle("/api/v1/transport/routes", userAuth(hrOrAbove(http.HandlerFunc(transportHandler.CreateRoute)))).Methods("POST")
	r.Handle("/api/v1/transport/routes", userAuth(http.HandlerFunc(transportHandler.ListRoutes))).Methods("GET")
	r.Handle("/api/v1/transport/routes/{id}", userAuth(http.HandlerFunc(transportHandler.GetRoute))).Methods("GET")
	r.Handle("/api/v1/transport/routes/{id}", userAuth(adminOnly(http.HandlerFunc(transportHandler.DeleteRoute)))).Methods("DELETE")
	r.Handle("/api/v1/transport/routes/{id}/stops/{stopId}/riders", userAuth(hrOrAbove(http.HandlerFunc(transportHandler.AssignRider)))).Methods("POST")
	r.Handle("/api/v1/transport/routes/{id}/stops/{stopId}/riders", userAuth(hrOrAbove(http.HandlerFunc(transportHandler.UnassignRider)))).Methods("DELETE")

	// ==== NOTIFICATIONS ====
	// The stream endpoint identifies the subscriber by query parameter so
	// EventSource clients (no custom headers) can connect.
	r.Handle("/api/v1/notifications/stream", realtime.StreamHandler(registry, cfg.HeartbeatInterval)).Methods("GET")

	notifHandler := handlers.NewNotificationHandler(notifSvc)
	r.Handle("/api/v1/notifications", userAuth(http.HandlerFunc(notifHandler.Query))).Methods("GET")
	r.Handle("/api/v1/notifications", userAuth(http.HandlerFunc(notifHandler.Mutate))).Methods("POST")
	r.Handle("/api/v1/notifications/send", userAuth(hrOrAbove(handlers.SendNotificationHandler(notifSvc)))).Methods("POST")

	prefsHandler := handlers.NewNotificationPreferencesHandler(prefsSvc)
	r.Handle("/api/v1/notifications/preferences", userAuth(http.HandlerFunc(prefsHandler.Get))).Methods("GET")
	r.Handle("/api/v1/notifications/preferences", userAuth(http.HandlerFunc(prefsHandler.Update))).Methods("PUT")

	// ==== METRICS ====
	r.Handle("/metrics", promhttp.Handler())

	// ==== START SERVER ====
	handler := cors(r)
	log.Logger.Info().Msgf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Logger.Fatal().Err(err).Msg("server failed")
	}
}
