// Command createadmin заводит администратора-модератора и печатает его ключ.
//
//	go run ./cmd/createadmin -name "Ana" -email ana@inacap.cl -password 'Secreta123'
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/db"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

func main() {
	name := flag.String("name", "", "имя администратора")
	email := flag.String("email", "", "email администратора")
	password := flag.String("password", "", "пароль администратора")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("createadmin: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	ctx := context.Background()
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("createadmin: ошибка подключения к базе")
	}
	defer dbConn.Close()

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		logger.Log.WithError(err).Fatal("createadmin: ошибка миграций")
	}

	accounts := service.NewAccountService(
		repository.NewStudentRepository(dbConn),
		repository.NewAdministratorRepository(dbConn),
		cfg.VerificationTokenTTL,
	)

	admin, err := accounts.CreateAdministrator(ctx, *name, *email, *password)
	if err != nil {
		logger.Log.WithError(err).Fatal("createadmin: не удалось создать администратора")
	}

	logger.Log.WithFields(logrus.Fields{
		"administrator_id": admin.ID,
		"email":            admin.Email,
	}).Info("createadmin: администратор создан")
	fmt.Println(admin.APIKey)
}
