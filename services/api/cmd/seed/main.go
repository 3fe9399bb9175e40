package main

import (
	"context"
	"fmt"
	"os"

	"vidshare/pkg/apperr"
	"vidshare/pkg/config"
	"vidshare/pkg/database"
	"vidshare/pkg/jwt"
	"vidshare/pkg/logger"
	"vidshare/pkg/storage"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/model"
	"vidshare/services/api/internal/repo/persistent"
	"vidshare/services/api/internal/usecase"
)

type seedUser struct {
	email    string
	name     string
	password string
}

type seedVideo struct {
	title      string
	category   entity.Category
	visibility entity.Visibility
	chapters   string
}

const sampleVideoURL = "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithOptions(cfg.LogLevel, "console", os.Stdout)
	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	defer database.Close(db)

	if err := db.AutoMigrate(&model.UserModel{}, &model.NotificationModel{}, &model.VideoModel{}); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Error("Failed to create media store: %v", err)
		panic(err)
	}

	userRepo := persistent.NewUserRepository(db)
	videoRepo := persistent.NewVideoRepository(db)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwt.NewService(cfg.JWTSecret), usecase.AdminCredentials{}, log)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, userRepo, store, nil, 0, log)

	if err := seedDatabase(ctx, authUseCase, videoUseCase, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(
	ctx context.Context,
	authUseCase usecase.AuthUseCase,
	videoUseCase usecase.VideoUseCase,
	log *logger.Logger,
) error {
	users := []seedUser{
		{"alice@test.com", "Alice", "password123"},
		{"bob@test.com", "Bob", "password123"},
		{"charlie@test.com", "Charlie", "password123"},
	}

	videos := []seedVideo{
		{"Lo-fi beats to code to", entity.CategoryMusic, entity.VisibilityPublic, "0:00 Intro\n2:30 Main mix"},
		{"Speedrun highlights", entity.CategoryGaming, entity.VisibilityPublic, ""},
		{"Road trip vlog", entity.CategoryTravel, entity.VisibilityUnlisted, "0:00 Departure\n12:15 Arrival"},
		{"Draft cut", entity.CategoryOther, entity.VisibilityPrivate, ""},
	}

	for i, u := range users {
		user, _, err := authUseCase.Register(ctx, usecase.RegisterInput{Email: u.email, Name: u.name, Password: u.password})
		if apperr.Is(err, apperr.KindConflict) {
			log.Info("User %s already exists, skipping", u.email)
			continue
		}
		if err != nil {
			return fmt.Errorf("register %s: %w", u.email, err)
		}
		log.Info("Created user: %s (%s)", user.Name, user.Email)

		caller := entity.Caller{UserID: user.ID}
		for j, v := range videos {
			if (i+j)%2 == 1 {
				continue
			}
			draft := entity.VideoDraft{
				Title:       fmt.Sprintf("%s by %s", v.title, user.Name),
				VideoURL:    sampleVideoURL,
				Description: fmt.Sprintf("Seeded %s video", v.category),
				Category:    string(v.category),
				Visibility:  string(v.visibility),
				Chapters:    entity.ChapterText(v.chapters),
			}
			video, err := videoUseCase.CreateVideo(ctx, caller, draft)
			if err != nil {
				log.Error("Failed to create video %q for %s: %v", draft.Title, user.Email, err)
				continue
			}
			log.Info("Created video: %s", video.Title)
		}

		if err := authUseCase.AppendNotification(ctx, user.ID, fmt.Sprintf("Welcome to VidShare, %s!", user.Name)); err != nil {
			log.Warn("Failed to add welcome notification for %s: %v", user.Email, err)
		}
	}

	return nil
}
