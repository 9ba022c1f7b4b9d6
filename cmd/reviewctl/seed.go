package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/review-composer/internal/config"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/repository"
	"github.com/fadilmartias/review-composer/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openAssignments() (*usecase.AssignmentUsecase, error) {
	db, err := gorm.Open(postgres.Open(config.LoadDBConfig().DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return nil, fmt.Errorf("create extension: %w", err)
	}
	if err := db.AutoMigrate(&model.Assignment{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return usecase.NewAssignmentUsecase(repository.NewAssignmentRepository(db)), nil
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the assignment catalog, skipping codes that already exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := usecase.DefaultAssignments
			if file != "" {
				var err error
				if items, err = loadAssignments(file); err != nil {
					return err
				}
			}
			uc, err := openAssignments()
			if err != nil {
				return err
			}
			created, skipped, err := uc.Seed(cmd.Context(), items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "assignments: %s created, %d skipped\n", green(created), skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON list of {code, title, description} to seed instead of the built-in catalog")
	return cmd
}

func newAssignmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assignments",
		Short: "List the assignment catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := openAssignments()
			if err != nil {
				return err
			}
			items, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), []string{"Code", "Title", "ID"})
			for _, a := range items {
				_ = table.Append([]string{a.Code, a.Title, a.ID.String()})
			}
			return table.Render()
		},
	}
}

// loadAssignments reads a catalog file. JSON is accepted as a subset of YAML.
func loadAssignments(path string) ([]model.Assignment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []model.Assignment
	if err := yaml.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i, a := range items {
		if a.Code == "" || a.Title == "" {
			return nil, fmt.Errorf("%s: item %d needs code and title", path, i)
		}
	}
	return items, nil
}
