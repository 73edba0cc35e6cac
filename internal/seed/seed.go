// Package seed fills an empty database with a default admin account and
// a handful of starter departments.
package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/derin/notehub/internal/app/models"
	"github.com/derin/notehub/internal/app/repositories"
	"github.com/derin/notehub/internal/pkg/auth"
	"github.com/derin/notehub/internal/pkg/slug"
)

// Default admin credentials for a fresh install. Change the password
// after first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type starterDepartment struct {
	name        string
	description string
	icon        string
}

var starterDepartments = []starterDepartment{
	{"Computer Science", "Programming, algorithms, data structures, and software development", "💻"},
	{"Electronics", "Circuit design, digital systems, and embedded programming", "🔌"},
	{"Mechanical", "Mechanics, thermodynamics, and manufacturing", "⚙️"},
	{"Civil", "Structures, construction, and infrastructure", "🏗️"},
	{"Electrical", "Power systems, machines, and control systems", "⚡"},
}

// CreateDefaultData seeds the default admin and starter departments when
// the corresponding tables are empty. Safe to run on every start.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	if err := seedAdmin(ctx, repos.AdminRepository, lgr); err != nil {
		return err
	}
	return seedDepartments(ctx, repos.DepartmentRepository, lgr)
}

func seedAdmin(ctx context.Context, adminRepo *repositories.AdminRepository, lgr zerolog.Logger) error {
	count, err := adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.Admin{Username: DefaultAdminUsername, PasswordHash: hash}
	if err := adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("username", DefaultAdminUsername).Msg("Default admin created")
	return nil
}

func seedDepartments(ctx context.Context, departmentRepo *repositories.DepartmentRepository, lgr zerolog.Logger) error {
	existing, err := departmentRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, sd := range starterDepartments {
		department := &models.Department{
			Name:        sd.name,
			Slug:        slug.Make(sd.name),
			Description: sd.description,
			Icon:        sd.icon,
		}
		if err := departmentRepo.CreateWithSemesters(ctx, department); err != nil {
			lgr.Error().Err(err).Str("name", sd.name).Msg("Error seeding department")
			continue
		}
	}

	lgr.Info().Int("departments", len(starterDepartments)).Msg("Starter departments created")
	return nil
}
