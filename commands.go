package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/models"
	"github.com/diogo-costa-silva/portfolio/services"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(settings)
			if err != nil {
				return err
			}
			if err := db.Migrate(); err != nil {
				return err
			}
			fmt.Println("Database migration completed successfully!")
			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	var outPath string
	var reportOnly bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate typed query helpers for the models",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(settings)
			if err != nil {
				return err
			}
			gormDB := db.ProjectRepo().GetDB()

			if reportOnly {
				if n := models.GenerateColumnMismatchReport(gormDB); n > 0 {
					return fmt.Errorf("%d columns not accounted for in models", n)
				}
				return nil
			}
			return models.GenerateModels(gormDB, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "./query", "output directory for generated code")
	cmd.Flags().BoolVar(&reportOnly, "report-only", false, "only print the column mismatch report")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Upsert the projects of a YAML or JSON file into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := readSeedFile(args[0])
			if err != nil {
				return err
			}

			db, err := openDatabase(settings)
			if err != nil {
				return err
			}
			if err := db.Migrate(); err != nil {
				return err
			}

			repo := db.ProjectRepo()
			for i := range projects {
				if err := repo.Upsert(&projects[i]); err != nil {
					return fmt.Errorf("upsert %s: %w", projects[i].ID, err)
				}
				log.Debug().Str("projectID", projects[i].ID).Msg("project seeded")
			}

			fmt.Printf("Seeded %d projects from %s\n", len(projects), args[0])
			return nil
		},
	}
}

// readSeedFile decodes a catalog file in the {"projects": [...]} resource
// shape, as YAML or JSON depending on the extension.
func readSeedFile(path string) ([]models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return services.DecodeProjectsYAML(data)
	case ".json":
		var list models.ProjectList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, errs.NewMalformedPayloadError("projects", err)
		}
		for _, p := range list.Projects {
			if field := p.Validate(); field != "" {
				return nil, errs.NewInvalidFieldError(field, "invalid project "+p.ID)
			}
		}
		return list.Projects, nil
	default:
		return nil, errs.NewBadRequestError("unsupported seed file extension " + filepath.Ext(path))
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Clear the GitHub cache and rebuild the summary selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), settings)
			if err != nil {
				return err
			}

			projects, err := app.loader.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			for _, p := range projects {
				line := fmt.Sprintf("%-40s %s", p.ID, p.Status.Label())
				if p.HasGithubData() && p.LastCommitDate != nil {
					line += "  last commit " + p.LastCommitDate.Format("2006-01-02")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the GitHub enrichment cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the cached summary selection and full-page enrichment",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(settings)
			if err != nil {
				return err
			}
			if err := db.Migrate(); err != nil {
				return err
			}

			summary, full := newCaches(db, settings)
			for _, cache := range []*services.Cache{summary, full} {
				if err := cache.Clear(); err != nil {
					return err
				}
			}
			fmt.Println("GitHub cache cleared")
			return nil
		},
	})
	return cmd
}
