package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/employee-management/internal/seed"
	"github.com/frahmantamala/employee-management/internal/transport/rest"
	"github.com/frahmantamala/employee-management/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedAdminPassword string
	seedDemo          bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with roles and the admin user",
	Long:  `Create the ADMIN, HR MANAGER and EMPLOYEE roles and the admin user. With --demo, also sample users and employees. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, gdb, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		lg := logger.LoggerWrapper()
		// no publisher: seeding does not produce audit events
		services := rest.BuildServices(gdb, db, cfg.Security, nil, lg)

		report, err := seed.NewSeeder(services.Role, services.User, services.Employee, lg).
			Run(context.Background(), seed.Options{AdminPassword: seedAdminPassword, Demo: seedDemo})
		if err != nil {
			log.Fatalf("seed failed: %v", err)
		}

		fmt.Printf("Seeded %d role(s), %d user(s), %d employee(s)\n", report.Roles, report.Users, report.Employees)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "password for the admin user (default "+seed.DefaultAdminPassword+")")
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also create demo users and employees")
}
