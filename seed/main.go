// Command seed resets the spaces collection and creates an admin account.
//
//	ADMIN_EMAIL=admin@example.com ADMIN_PASSWORD=changeme go run ./seed
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"cowork/config"
	"cowork/database"
	spaceRepo "cowork/database/repository/space"
	userRepo "cowork/database/repository/user"
	"cowork/models"
	"cowork/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var sampleSpaces = []models.CoworkingSpace{
	{Name: "Siam Hub", Address: "989 Rama I Rd, Pathum Wan, Bangkok", Tel: "021234567", OpenTime: "08:00", CloseTime: "20:00"},
	{Name: "Ari Loft", Address: "12 Phahonyothin Soi 7, Phaya Thai, Bangkok", Tel: "029876543", OpenTime: "09:00", CloseTime: "22:00"},
	{Name: "Riverside Desk", Address: "45 Charoen Krung Rd, Bang Rak, Bangkok", Tel: "026543210", OpenTime: "07:30", CloseTime: "18:00"},
	{Name: "Night Owl Space", Address: "88 Sukhumvit 24, Khlong Toei, Bangkok", Tel: "024445566", OpenTime: "12:00", CloseTime: "23:59"},
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if err := database.InitDB(); err != nil {
		logger.Fatal("seed: failed to connect", zap.Error(err))
	}
	db := database.Database()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear existing directory data.
	for _, coll := range []string{"coworkingspaces", "reservations", "favorites"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			logger.Fatal("seed: failed to clear collection", zap.String("collection", coll), zap.Error(err))
		}
	}

	spaces, err := spaceRepo.NewMongoSpaceRepo(db)
	if err != nil {
		logger.Fatal("seed: failed to open spaces", zap.Error(err))
	}
	for _, sp := range sampleSpaces {
		sp := sp
		if err := spaces.Create(ctx, &sp); err != nil {
			logger.Fatal("seed: failed to insert space", zap.String("name", sp.Name), zap.Error(err))
		}
	}
	logger.Info("seed: inserted spaces", zap.Int("count", len(sampleSpaces)))

	email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Info("seed: ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	users, err := userRepo.NewMongoUserRepo(db)
	if err != nil {
		logger.Fatal("seed: failed to open users", zap.Error(err))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("seed: failed to hash password", zap.Error(err))
	}
	admin := &models.User{
		ID:           uuid.New().String(),
		Name:         "Administrator",
		Telephone:    "0000000000",
		Email:        email,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			logger.Info("seed: admin account already exists", zap.String("email", email))
			return
		}
		logger.Fatal("seed: failed to create admin", zap.Error(err))
	}
	logger.Info("seed: created admin account", zap.String("email", admin.Email))
}
