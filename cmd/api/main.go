package main

import (
	"fmt"
	"net/http"

	"github.com/cutikita/leave-backend-go/internal/config"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	appHTTP "github.com/cutikita/leave-backend-go/internal/handler/http"
	"github.com/cutikita/leave-backend-go/internal/pkg/cron"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
	"github.com/cutikita/leave-backend-go/internal/pkg/jwt"
	"github.com/cutikita/leave-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cutikita/leave-backend-go/internal/service/auth"
	serviceEmployee "github.com/cutikita/leave-backend-go/internal/service/employee"
	serviceLeave "github.com/cutikita/leave-backend-go/internal/service/leave"
	serviceReport "github.com/cutikita/leave-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	catalogOverrides := map[leave.LeaveType]int{}
	if cfg.Leave.AnnualAllocation > 0 {
		catalogOverrides[leave.LeaveTypeAnnual] = cfg.Leave.AnnualAllocation
	}
	catalog := leave.NewCatalogWithOverrides(catalogOverrides)

	requestService := serviceLeave.NewRequestService(txManager, catalog, leaveRequestRepo, leaveBalanceRepo, employeeRepo)
	balanceService := serviceLeave.NewBalanceService(txManager, catalog, leaveBalanceRepo, employeeRepo)
	employeeService := serviceEmployee.NewEmployeeService(txManager, catalog, employeeRepo, leaveBalanceRepo)
	authService := serviceAuth.NewAuthService(employeeRepo, jwtService)
	reportService := serviceReport.NewReportService(reportRepo, employeeRepo, leaveBalanceRepo, leaveRequestRepo)

	authHandler := appHTTP.NewAuthHandler(authService)
	leaveHandler := appHTTP.NewLeaveHandler(requestService, balanceService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeService, balanceService, reportService)
	reportHandler := appHTTP.NewReportHandler(reportService)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("balance-rollover", cfg.Leave.RolloverInterval, balanceService.RolloverAll)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		leaveHandler,
		employeeHandler,
		reportHandler,
		cfg.App.Env,
		cfg.App.AllowedOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
