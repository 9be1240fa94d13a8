package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	allocationPostgres "github.com/satriajanaka/workforce-management/internal/allocation/postgres"
	allocationDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/allocation"
	employeeDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/employee"
	projectDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/project"
	userDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/user"
	employeePostgres "github.com/satriajanaka/workforce-management/internal/employee/postgres"
	"github.com/satriajanaka/workforce-management/internal/utilization"
	"github.com/satriajanaka/workforce-management/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init("development")

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"allocations", "projects", "employees", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedUsers(db)
		employees := seedEmployees(db)
		projects := seedProjects(db)
		seedAllocations(db, employees, projects)

		fmt.Println("Seeding complete")
	},
}

func seedUsers(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	users := []userDatamodel.User{
		{Username: "admin", Email: "admin@workforce.local", PasswordHash: string(hash), Role: "Admin", IsVerified: true},
		{Username: "manager", Email: "manager@workforce.local", PasswordHash: string(hash), Role: "Manager", IsVerified: true},
	}

	for _, u := range users {
		var count int64
		db.Model(&userDatamodel.User{}).Where("username = ?", u.Username).Count(&count)
		if count > 0 {
			fmt.Printf("user %s already exists, skipping\n", u.Username)
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Username, err)
		}
		fmt.Printf("Seeded user %s (%s)\n", u.Username, u.Role)
	}
}

func seedEmployees(db *gorm.DB) []employeeDatamodel.Employee {
	employees := []employeeDatamodel.Employee{
		{Name: "Ayu Lestari", Email: "ayu@workforce.local", Designation: "Backend Engineer", Skills: "go,postgres,docker"},
		{Name: "Budi Santoso", Email: "budi@workforce.local", Designation: "Frontend Engineer", Skills: "react,typescript,css"},
		{Name: "Citra Dewi", Email: "citra@workforce.local", Designation: "Data Engineer", Skills: "python,sql,airflow"},
		{Name: "Dimas Putra", Email: "dimas@workforce.local", Designation: "Fullstack Engineer", Skills: "go,react,postgres"},
		{Name: "Eka Pratama", Email: "eka@workforce.local", Designation: "QA Engineer", Skills: ""},
	}

	for i := range employees {
		var existing employeeDatamodel.Employee
		err := db.Where("email = ?", employees[i].Email).First(&existing).Error
		if err == nil {
			employees[i] = existing
			continue
		}
		if err := db.Create(&employees[i]).Error; err != nil {
			log.Fatalf("failed to seed employee %s: %v", employees[i].Name, err)
		}
		fmt.Printf("Seeded employee %s\n", employees[i].Name)
	}
	return employees
}

func seedProjects(db *gorm.DB) []projectDatamodel.Project {
	projects := []projectDatamodel.Project{
		{Name: "Billing Platform", ClientName: "Acme Corp", RequiredSkills: "go,postgres", Status: "Active"},
		{Name: "Storefront Revamp", ClientName: "Borneo Retail", RequiredSkills: "react,typescript", Status: "Active"},
		{Name: "Data Warehouse", ClientName: "Cendana Bank", RequiredSkills: "python,sql,airflow", Status: "Active"},
		{Name: "Legacy Migration", ClientName: "Acme Corp", RequiredSkills: "go,docker", Status: "Completed"},
	}

	for i := range projects {
		var existing projectDatamodel.Project
		err := db.Where("name = ?", projects[i].Name).First(&existing).Error
		if err == nil {
			projects[i] = existing
			continue
		}
		if err := db.Create(&projects[i]).Error; err != nil {
			log.Fatalf("failed to seed project %s: %v", projects[i].Name, err)
		}
		fmt.Printf("Seeded project %s\n", projects[i].Name)
	}
	return projects
}

// seedAllocations books a spread of utilization levels, then runs the engine
// so the stored statuses match the seeded hours.
func seedAllocations(db *gorm.DB, employees []employeeDatamodel.Employee, projects []projectDatamodel.Project) {
	if len(employees) < 4 || len(projects) < 3 {
		log.Fatal("not enough seed employees or projects for allocations")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	in90Days := today.AddDate(0, 0, 90)

	allocations := []allocationDatamodel.Allocation{
		// Ayu fully utilized on one project
		{EmployeeID: employees[0].ID, ProjectID: projects[0].ID, AllocatedHours: 40, StartDate: today, EndDate: in90Days},
		// Budi partially utilized
		{EmployeeID: employees[1].ID, ProjectID: projects[1].ID, AllocatedHours: 20, StartDate: today, EndDate: in90Days},
		// Dimas split across two projects
		{EmployeeID: employees[3].ID, ProjectID: projects[0].ID, AllocatedHours: 16, StartDate: today, EndDate: in90Days},
		{EmployeeID: employees[3].ID, ProjectID: projects[2].ID, AllocatedHours: 16, StartDate: today, EndDate: in90Days},
	}

	for _, a := range allocations {
		var count int64
		db.Model(&allocationDatamodel.Allocation{}).
			Where("employee_id = ? AND project_id = ?", a.EmployeeID, a.ProjectID).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&a).Error; err != nil {
			log.Fatalf("failed to seed allocation: %v", err)
		}
	}

	engine := utilization.NewEngine(
		employeePostgres.NewEmployeeRepository(db),
		allocationPostgres.NewAllocationRepository(db),
		logger.L(),
	)
	ctx := context.Background()
	for _, emp := range employees {
		status, err := engine.Recompute(ctx, emp.ID, today)
		if err != nil {
			log.Fatalf("failed to recompute status for %s: %v", emp.Name, err)
		}
		fmt.Printf("%s -> %s\n", emp.Name, status)
	}
}
