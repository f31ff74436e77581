package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/config"
	appHTTP "github.com/shiftmanager/shiftmanager-backend-go/internal/handler/http"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/clock"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/email"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/jwt"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/repository/postgresql"
	authService "github.com/shiftmanager/shiftmanager-backend-go/internal/service/auth"
	employeeService "github.com/shiftmanager/shiftmanager-backend-go/internal/service/employee"
	locationService "github.com/shiftmanager/shiftmanager-backend-go/internal/service/location"
	notificationService "github.com/shiftmanager/shiftmanager-backend-go/internal/service/notification"
	reportService "github.com/shiftmanager/shiftmanager-backend-go/internal/service/report"
	shiftService "github.com/shiftmanager/shiftmanager-backend-go/internal/service/shift"
	vacationService "github.com/shiftmanager/shiftmanager-backend-go/internal/service/vacation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	shiftTypeRepo := postgresql.NewShiftTypeRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	vacationRepo := postgresql.NewVacationRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailSender := email.NewSender(cfg.SMTP)
	systemClock := clock.System()

	notifier := notificationService.NewService(notificationRepo, employeeRepo, emailSender)
	auth := authService.NewService(employeeRepo, jwtService)
	employees := employeeService.NewService(db, employeeRepo, vacationRepo, notificationRepo, assignmentRepo)
	locations := locationService.NewService(locationRepo)
	shifts := shiftService.NewService(db, shiftRepo, shiftTypeRepo, assignmentRepo, employeeRepo, locationRepo, notifier, systemClock)
	vacations := vacationService.NewService(db, vacationRepo, assignmentRepo, employeeRepo, notifier, systemClock)
	reports := reportService.NewService(assignmentRepo, vacationRepo, systemClock)

	router := appHTTP.NewRouter(
		jwtService,
		appHTTP.NewAuthHandler(auth),
		appHTTP.NewEmployeeHandler(employees),
		appHTTP.NewLocationHandler(locations),
		appHTTP.NewShiftHandler(shifts),
		appHTTP.NewVacationHandler(vacations),
		appHTTP.NewNotificationHandler(notifier),
		appHTTP.NewReportHandler(reports),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
