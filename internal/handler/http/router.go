package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplekit/hrledger-backend-go/internal/handler/http/middleware"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth          AuthHandler
	Balance       BalanceHandler
	Leave         LeaveHandler
	Attendance    AttendanceHandler
	Reimbursement ReimbursementHandler
	Payroll       PayrollHandler
	Employee      EmployeeHandler
}

func NewRouter(env string, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrledger"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		if env != "production" {
			r.Post("/auth/dev-token", h.Auth.DevToken)
		}

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/balances/my", h.Balance.GetMy)

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Create)
				r.Get("/my", h.Leave.GetMy)
				r.Post("/{id}/cancel", h.Leave.Cancel)

				// Manager decisions; escalated requests additionally need a
				// founder, which the service enforces per request.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/pending", h.Leave.Pending)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
					r.Post("/{id}/escalate", h.Leave.Escalate)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFounder)
					r.Get("/escalated", h.Leave.Escalated)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Get("/my", h.Attendance.GetMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/today", h.Attendance.TodayLog)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFounder)
					r.Post("/{id}/remote/approve", h.Attendance.ApproveRemote)
					r.Post("/{id}/remote/reject", h.Attendance.RejectRemote)
				})
			})

			r.Route("/reimbursements", func(r chi.Router) {
				r.Post("/", h.Reimbursement.Create)
				r.Get("/my", h.Reimbursement.GetMy)
				r.Post("/{id}/cancel", h.Reimbursement.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFounder)
					r.Get("/pending", h.Reimbursement.Pending)
					r.Post("/{id}/approve", h.Reimbursement.Approve)
					r.Post("/{id}/reject", h.Reimbursement.Reject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireFounder)
				r.Post("/compute", h.Payroll.Compute)
				r.Post("/finalize", h.Payroll.Finalize)
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/my", h.Payroll.GetMyPayslips)
				r.Get("/{id}/pdf", h.Payroll.PayslipPDF)
			})

			r.Get("/bonus/my", h.Payroll.GetMyBonus)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/employees/team", h.Employee.GetMyTeam)
			})
		})
	})
	return r
}
