package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/talenthub-hr/hr-backend-go/internal/config"
	appHTTP "github.com/talenthub-hr/hr-backend-go/internal/handler/http"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/cron"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/database"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/talenthub-hr/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/talenthub-hr/hr-backend-go/internal/service/attendance"
	authService "github.com/talenthub-hr/hr-backend-go/internal/service/auth"
	employeeService "github.com/talenthub-hr/hr-backend-go/internal/service/employee"
	leaveService "github.com/talenthub-hr/hr-backend-go/internal/service/leave"
	notificationService "github.com/talenthub-hr/hr-backend-go/internal/service/notification"
	settingsService "github.com/talenthub-hr/hr-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	leaveRecordRepo := postgresql.NewLeaveRecordRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})
	defer notificationSvc.Stop()

	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRecordRepo, leaveBalanceRepo, employeeRepo, settingsSvc, notificationSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, leaveRecordRepo, settingsSvc)
	authSvc := authService.NewAuthService(employeeRepo, jwtService, refreshTokenRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, employeeSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		employeeHandler,
		settingsHandler,
		leaveHandler,
		attendanceHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler(slog.Default())
	cron.NewLeaveJobs(leaveRecordRepo, employeeRepo, attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
