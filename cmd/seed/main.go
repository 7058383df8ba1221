package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/teamclock/attendance-api/internal/config"
	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/database"
	"github.com/teamclock/attendance-api/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

var seedUsers = []user.User{
	{Name: "Manoj Manager", Email: "manager@test.com", Role: user.RoleManager, EmployeeID: "MGR001", Department: "CSE"},
	{Name: "John Doe", Email: "employee1@test.com", Role: user.RoleEmployee, EmployeeID: "EMP001", Department: "Engineering"},
	{Name: "Alice", Email: "employee2@test.com", Role: user.RoleEmployee, EmployeeID: "EMP002", Department: "HR"},
	{Name: "Bob", Email: "employee3@test.com", Role: user.RoleEmployee, EmployeeID: "EMP003", Department: "Sales"},
}

type seedRecord struct {
	employeeID string
	record     attendance.Attendance
}

func strPtr(s string) *string { return &s }

var seedRecords = []seedRecord{
	{"EMP001", attendance.Attendance{Date: "2025-11-28", CheckInTime: strPtr("09:10"), CheckOutTime: strPtr("18:05"), Status: attendance.StatusPresent, TotalHours: 8.92}},
	{"EMP002", attendance.Attendance{Date: "2025-11-28", Status: attendance.StatusAbsent}},
	{"EMP003", attendance.Attendance{Date: "2025-11-28", CheckInTime: strPtr("10:15"), CheckOutTime: strPtr("18:30"), Status: attendance.StatusLate, TotalHours: 8.25}},
}

func main() {
	reset := flag.Bool("reset", false, "truncate all tables before seeding")
	flag.Parse()

	if err := run(context.Background(), *reset); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Seed data inserted")
}

func run(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("seeding requires STORE_DRIVER=%s", config.StoreDriverPostgres)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	passwordHash := string(hash)

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	return postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		if reset {
			if err := postgresql.Truncate(ctx, db); err != nil {
				return err
			}
		}

		return seed(ctx, userRepo, attendanceRepo, passwordHash)
	})
}

// seed creates the demo roster, skipping employees that already exist, and
// upserts the demo attendance day.
func seed(ctx context.Context, userRepo user.UserRepository, attendanceRepo attendance.AttendanceRepository, passwordHash string) error {
	ids := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		existing, err := userRepo.GetByEmployeeID(ctx, u.EmployeeID)
		if err == nil {
			ids[u.EmployeeID] = existing.ID
			continue
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return err
		}

		u.PasswordHash = &passwordHash
		created, err := userRepo.Create(ctx, u)
		if err != nil {
			return fmt.Errorf("create %s: %w", u.EmployeeID, err)
		}
		ids[u.EmployeeID] = created.ID
		slog.Info("Seeded user", "employee_id", created.EmployeeID, "email", created.Email, "role", created.Role)
	}

	for _, r := range seedRecords {
		rec := r.record
		rec.UserID = ids[r.employeeID]
		if _, err := attendanceRepo.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("seed attendance for %s: %w", r.employeeID, err)
		}
	}
	return nil
}
