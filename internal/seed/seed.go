// Package seed installs the default roles, privileges and administrator, and
// optionally a small sample catalog for demos.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory-tracker/internal/config"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
)

const auditSystem = "system"

type Seeder struct {
	db         *gorm.DB
	privileges repository.PrivilegeRepository
	roles      repository.RoleRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	log        *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) *Seeder {
	return &Seeder{
		db:         db,
		privileges: repository.NewPrivilegeRepo(db),
		roles:      repository.NewRoleRepo(db),
		users:      repository.NewUserRepo(db),
		categories: repository.NewCategoryRepo(db),
		log:        log,
	}
}

// Run is idempotent: existing rows are left untouched.
func (s *Seeder) Run(ctx context.Context, cfg config.Seed) error {
	if err := s.privileges.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed privileges: %w", err)
	}
	if err := s.roles.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if err := s.grantPrivileges(ctx); err != nil {
		return err
	}
	if err := s.ensureAdmin(ctx, cfg); err != nil {
		return err
	}
	if cfg.SampleData {
		if err := s.sampleCatalog(ctx); err != nil {
			return err
		}
	}
	return nil
}

// grantPrivileges fills roles that have no privileges yet.
func (s *Seeder) grantPrivileges(ctx context.Context) error {
	all, err := s.privileges.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("list privileges: %w", err)
	}
	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("list roles: %w", err)
	}

	for i := range roles {
		role := &roles[i]
		if len(role.Privileges) > 0 {
			continue
		}
		var granted []model.Privilege
		for _, p := range all {
			if model.RoleGrants(role.Code, p.Code) {
				granted = append(granted, p)
			}
		}
		if err := s.roles.ReplacePrivileges(ctx, role, granted); err != nil {
			return fmt.Errorf("grant privileges to %s: %w", role.Code, err)
		}
		s.log.Info("Role privileges assigned", slog.String("role", role.Code), slog.Int("count", len(granted)))
	}
	return nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, cfg config.Seed) error {
	_, err := s.users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find admin: %w", err)
	}

	role, err := s.roles.FindByCode(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("find admin role: %w", err)
	}

	admin := &model.User{
		Email:        model.NormalizeEmail(cfg.AdminEmail),
		FullName:     cfg.AdminName,
		RoleID:       &role.ID,
		IsActive:     true,
		TokenVersion: uuid.NewString(),
	}
	admin.CreatedBy = auditSystem
	admin.UpdatedBy = auditSystem
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin user created", slog.String("email", admin.Email))
	return nil
}

type sampleProduct struct {
	name, description string
	category, supp    int
	quantity, reorder int
	price             string
}

// sampleCatalog loads demo categories, suppliers and products into an empty
// catalog.
func (s *Seeder) sampleCatalog(ctx context.Context) error {
	n, err := s.categories.Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	categories := []model.Category{
		{Name: "ICT Equipment", Description: "Computers, laptops, and networking equipment"},
		{Name: "Security Systems", Description: "Cameras, alarms, and security equipment"},
		{Name: "Office Supplies", Description: "Stationery and office equipment"},
	}
	suppliers := []model.Supplier{
		{Name: "Tech Solutions Ltd", Contact: "John Tech", Email: strPtr("info@techsolutions.rw"), Address: "Kigali, Rwanda - KN 4 Ave"},
		{Name: "Secure Systems Co", Contact: "Jane Security", Email: strPtr("sales@securesystems.rw"), Address: "Kigali, Rwanda - Nyabugogo"},
		{Name: "Office Depot Rwanda", Contact: "Mike Office", Email: strPtr("orders@officedepot.rw"), Address: "Kigali, Rwanda - Kicukiro"},
	}
	products := []sampleProduct{
		{"Laptop Dell Latitude 5420", "Business laptop with Intel i5, 8GB RAM, 256GB SSD", 0, 0, 15, 5, "850.00"},
		{"Desktop PC HP Pro", "Desktop computer for office use with monitor", 0, 0, 8, 3, "650.00"},
		{"Network Switch 24-Port", "Managed gigabit switch", 0, 0, 4, 5, "320.00"},
		{"CCTV Camera HD", "Outdoor HD security camera", 1, 1, 20, 8, "120.00"},
		{"Alarm Control Panel", "Wired alarm panel with keypad", 1, 1, 3, 2, "210.00"},
		{"A4 Paper Ream", "500 sheets, 80gsm", 2, 2, 120, 30, "5.50"},
		{"Ballpoint Pens (Box of 50)", "Blue ink", 2, 2, 9, 10, "7.25"},
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range categories {
			categories[i].CreatedBy = auditSystem
			if err := tx.Create(&categories[i]).Error; err != nil {
				return fmt.Errorf("create category: %w", err)
			}
		}
		for i := range suppliers {
			suppliers[i].CreatedBy = auditSystem
			if err := tx.Create(&suppliers[i]).Error; err != nil {
				return fmt.Errorf("create supplier: %w", err)
			}
		}
		for _, sp := range products {
			p := model.Product{
				Name:         sp.name,
				Description:  sp.description,
				CategoryID:   categories[sp.category].ID,
				SupplierID:   suppliers[sp.supp].ID,
				Quantity:     sp.quantity,
				ReorderLevel: sp.reorder,
				UnitPrice:    decimal.RequireFromString(sp.price),
			}
			p.CreatedBy = auditSystem
			if err := tx.Omit("Category", "Supplier").Create(&p).Error; err != nil {
				return fmt.Errorf("create product: %w", err)
			}
		}
		s.log.Info("Sample catalog loaded", slog.Int("products", len(products)))
		return nil
	})
}

func strPtr(s string) *string { return &s }
