package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/galeria-app/galeriabackend/auth"
	"github.com/galeria-app/galeriabackend/config"
	"github.com/galeria-app/galeriabackend/database"
	"github.com/galeria-app/galeriabackend/handlers"
	"github.com/galeria-app/galeriabackend/permissions"
	"github.com/galeria-app/galeriabackend/repository"
	"github.com/galeria-app/galeriabackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create database directory %s: %v", dir, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}
	log.Printf("Using database: %s", cfg.DatabasePath)

	userRepo := repository.NewGormUserRepository(db)
	tokenRepo := repository.NewGormTokenRepository(db)
	folderRepo := repository.NewGormFolderRepository(db)
	mediaRepo := repository.NewGormMediaRepository(db)
	albumRepo := repository.NewGormAlbumRepository(db)
	shareLinkRepo := repository.NewGormShareLinkRepository(db)

	identity := auth.NewIdentityService(userRepo, cfg.PasswordHashCost)
	issuer := auth.NewTokenIssuer(tokenRepo, userRepo, cfg.RefreshTokenTTL, cfg.AccessTokenTTL)
	resolver := permissions.NewResolver(albumRepo, shareLinkRepo)

	mediaService := services.NewMediaService(folderRepo, mediaRepo, cfg.MaxFolderDepth)
	albumService := services.NewAlbumService(albumRepo, mediaRepo, userRepo, cfg.ShareLinkSlugLength, cfg.MaxSlugRetries, cfg.PasswordHashCost)
	shareLinkService := services.NewShareLinkService(shareLinkRepo, albumRepo, cfg.ShareLinkSlugLength, cfg.MaxSlugRetries, cfg.PasswordHashCost)

	authHandler := handlers.NewAuthHandler(identity, issuer)
	albumHandler := handlers.NewAlbumHandler(albumService, shareLinkService, resolver)
	folderHandler := handlers.NewFolderHandler(mediaService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)
	r.Use(func(next http.Handler) http.Handler {
		return handlers.MixedAuthMiddleware(issuer, next)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/federated", authHandler.FederatedLogin)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/access_token", authHandler.AccessToken)
			r.Post("/logout", authHandler.Logout)
			r.With(handlers.RequireUser).Get("/me", authHandler.CurrentUser)
		})

		r.Route("/folders", func(r chi.Router) {
			r.Use(handlers.RequireUser)
			r.Post("/", folderHandler.CreateFolder)
			r.Get("/", folderHandler.ListRootFolders)
			r.Route("/{folder_uuid}", func(r chi.Router) {
				r.Get("/", folderHandler.GetFolder)
				r.Put("/", folderHandler.RenameFolder)
				r.Put("/move", folderHandler.MoveFolder)
				r.Delete("/", folderHandler.DeleteFolder)
			})
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(handlers.RequireUser)
			r.Post("/", mediaHandler.InsertMedia)
			r.Get("/search", mediaHandler.SearchMedia)
			r.Get("/favorites", albumHandler.ListFavorites)
			r.Route("/{media_uuid}", func(r chi.Router) {
				r.Get("/", mediaHandler.GetMedia)
				r.Put("/move", mediaHandler.MoveMedia)
				r.Delete("/", mediaHandler.DeleteMedia)
				r.Put("/favorite", albumHandler.FavoriteMedia)
				r.Delete("/favorite", albumHandler.UnfavoriteMedia)
			})
		})

		r.Route("/albums", func(r chi.Router) {
			r.With(handlers.RequireUser).Post("/", albumHandler.CreateAlbum)
			r.With(handlers.RequireUser).Get("/", albumHandler.ListAlbums)
			r.Route("/{album_uuid}", func(r chi.Router) {
				r.Get("/", albumHandler.GetAlbum)
				r.Put("/", albumHandler.UpdateAlbum)
				r.Delete("/", albumHandler.DeleteAlbum)
				r.Get("/contents", albumHandler.GetAlbumContents)
				r.Post("/media", albumHandler.AddAlbumMedia)
				r.Delete("/media/{media_uuid}", albumHandler.RemoveAlbumMedia)
				r.Put("/thumbnail", albumHandler.SetAlbumThumbnail)
				r.With(handlers.RequireUser).Post("/invites", albumHandler.CreateInvite)
				r.With(handlers.RequireUser).Get("/invites", albumHandler.ListInvites)
				r.With(handlers.RequireUser).Post("/share_links", albumHandler.CreateShareLink)
				r.With(handlers.RequireUser).Get("/share_links", albumHandler.ListShareLinks)
			})
		})

		r.Route("/invites", func(r chi.Router) {
			r.Use(handlers.RequireUser)
			r.Get("/", albumHandler.ListMyInvites)
			r.Post("/{invite_uuid}/accept", albumHandler.AcceptInvite)
			r.Delete("/{invite_uuid}", albumHandler.RevokeInvite)
		})

		r.With(handlers.RequireUser).Delete("/share_links/{link_uuid}", albumHandler.DeleteShareLink)

		r.Get("/shared/{slug}", albumHandler.GetSharedAlbum)
	})

	serverAddr := ":" + cfg.Port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
