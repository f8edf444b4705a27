package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/peoplekit/hrledger-backend-go/internal/config"
	appHTTP "github.com/peoplekit/hrledger-backend-go/internal/handler/http"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/jwt"
	"github.com/peoplekit/hrledger-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplekit/hrledger-backend-go/internal/service/attendance"
	balanceService "github.com/peoplekit/hrledger-backend-go/internal/service/balance"
	leaveService "github.com/peoplekit/hrledger-backend-go/internal/service/leave"
	payrollService "github.com/peoplekit/hrledger-backend-go/internal/service/payroll"
	reimbursementService "github.com/peoplekit/hrledger-backend-go/internal/service/reimbursement"
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
	defer db.Close()

	if err := database.Migrate(context.Background(), db, os.DirFS("migrations")); err != nil {
		log.Fatal("Error applying migrations: ", err)
	}

	officeLoc, err := time.LoadLocation(cfg.Office.Timezone)
	if err != nil {
		log.Fatal("Error loading office timezone: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reimbursementRepo := postgresql.NewReimbursementRepository(db)
	salaryConfigRepo := postgresql.NewSalaryConfigRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	bonusLedgerRepo := postgresql.NewBonusLedgerRepository(db)
	transactor := postgresql.NewTransactor(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	balances := balanceService.NewService(balanceRepo)
	leaves := leaveService.NewService(transactor, leaveRequestRepo, employeeRepo, balances, officeLoc)
	attendances := attendanceService.NewService(transactor, attendanceRepo, employeeRepo, balances, cfg.Office, officeLoc)
	reimbursements := reimbursementService.NewService(reimbursementRepo)
	payrolls := payrollService.NewService(
		transactor,
		employeeRepo,
		leaveRequestRepo,
		attendanceRepo,
		reimbursementRepo,
		salaryConfigRepo,
		payslipRepo,
		bonusLedgerRepo,
		balances,
	)

	router := appHTTP.NewRouter(cfg.App.Env, jwtService, appHTTP.Handlers{
		Auth:          appHTTP.NewAuthHandler(jwtService, employeeRepo),
		Balance:       appHTTP.NewBalanceHandler(balances),
		Leave:         appHTTP.NewLeaveHandler(leaves),
		Attendance:    appHTTP.NewAttendanceHandler(attendances),
		Reimbursement: appHTTP.NewReimbursementHandler(reimbursements),
		Payroll:       appHTTP.NewPayrollHandler(payrolls),
		Employee:      appHTTP.NewEmployeeHandler(employeeRepo),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
