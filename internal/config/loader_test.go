package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mergington/activities/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		// Keep a stray .env in the package directory out of the picture.
		_ = os.Setenv("ACTIVITIES_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.ChangeQueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.JournalSize, convey.ShouldEqual, 1_000)
				convey.So(cfg.MaxChangesLimit, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ACTIVITIES_ADDR", ":8080")
			_ = os.Setenv("ACTIVITIES_QUEUE_SIZE", "500")
			_ = os.Setenv("ACTIVITIES_WORKER_COUNT", "4")
			_ = os.Setenv("ACTIVITIES_JOURNAL_SIZE", "50")
			_ = os.Setenv("ACTIVITIES_LOG_FORMAT", "json")
			_ = os.Setenv("ACTIVITIES_ALLOWED_ORIGINS", "http://localhost:3000, https://mergington.edu")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ChangeQueueSize, convey.ShouldEqual, 500)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.JournalSize, convey.ShouldEqual, 50)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble,
					[]string{"http://localhost:3000", "https://mergington.edu"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
queue_size: 300
worker_count: 3
journal_size: 200
max_changes_limit: 25
allowed_origins:
  - https://mergington.edu
`)
			_ = os.Setenv("ACTIVITIES_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ChangeQueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.JournalSize, convey.ShouldEqual, 200)
				convey.So(cfg.MaxChangesLimit, convey.ShouldEqual, 25)
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"https://mergington.edu"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
queue_size: 300
worker_count: 3
`)
			_ = os.Setenv("ACTIVITIES_CONFIG", tmpFile)
			_ = os.Setenv("ACTIVITIES_ADDR", ":8080")      // This should override the file
			_ = os.Setenv("ACTIVITIES_WORKER_COUNT", "6") // This should override the file

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")          // Overridden by env
				convey.So(cfg.ChangeQueueSize, convey.ShouldEqual, 300)   // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 6)         // Overridden by env
				convey.So(cfg.MaxChangesLimit, convey.ShouldEqual, 100)   // From defaults
				convey.So(cfg.JournalSize, convey.ShouldEqual, 1_000)     // From defaults
			})
		})

		convey.Convey("When a .env file is present", func() {
			dotEnv := filepath.Join(t.TempDir(), "test.env")
			err := os.WriteFile(dotEnv, []byte("ACTIVITIES_ADDR=:7070\nACTIVITIES_LOG_LEVEL=debug\n"), 0o600)
			convey.So(err, convey.ShouldBeNil)
			_ = os.Setenv("ACTIVITIES_ENV_FILE", dotEnv)
			_ = os.Setenv("ACTIVITIES_LOG_LEVEL", "warn")

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values apply without overriding the real environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("ACTIVITIES_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ACTIVITIES_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("ACTIVITIES_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ACTIVITIES_QUEUE_SIZE", "invalid")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with negative values", func() {
			_ = os.Setenv("ACTIVITIES_JOURNAL_SIZE", "-5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should reject them", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestLoadSeed(t *testing.T) {
	convey.Convey("Given seed files", t, func() {
		ctx := context.Background()

		convey.Convey("When the roster is well-formed", func() {
			path := createTempConfigFile(t, `
activities:
  Robotics Club:
    description: Build and program robots
    schedule: Mondays, 3:30 PM - 5:00 PM
    max_participants: 8
    participants:
      - ada@mergington.edu
  St. Patrick's Choir:
    description: Sing in the school choir
    schedule: Fridays, 4:00 PM - 5:00 PM
    max_participants: 25
    participants: []
`)
			seed, err := config.LoadSeed(ctx, path)

			convey.Convey("Then every activity is loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(seed), convey.ShouldEqual, 2)

				robotics := seed["Robotics Club"]
				convey.So(robotics.MaxParticipants, convey.ShouldEqual, 8)
				convey.So(robotics.Participants, convey.ShouldResemble, []string{"ada@mergington.edu"})
				convey.So(robotics.Schedule, convey.ShouldEqual, "Mondays, 3:30 PM - 5:00 PM")

				convey.So(seed["St. Patrick's Choir"].MaxParticipants, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When a roster is over capacity", func() {
			path := createTempConfigFile(t, `
activities:
  Tiny Club:
    description: Too small
    schedule: Never
    max_participants: 1
    participants: [a@mergington.edu, b@mergington.edu]
`)
			_, err := config.LoadSeed(ctx, path)

			convey.Convey("Then it is rejected as invalid", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file defines no activities", func() {
			path := createTempConfigFile(t, "other: value\n")
			_, err := config.LoadSeed(ctx, path)

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.LoadSeed(ctx, "/non/existent/seed.yaml")

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

// Helper functions

func clearConfigEnvVars() {
	envVars := []string{
		"ACTIVITIES_CONFIG",
		"ACTIVITIES_ENV_FILE",
		"ACTIVITIES_ADDR",
		"ACTIVITIES_LOG_LEVEL",
		"ACTIVITIES_LOG_FORMAT",
		"ACTIVITIES_SEED_FILE",
		"ACTIVITIES_QUEUE_SIZE",
		"ACTIVITIES_WORKER_COUNT",
		"ACTIVITIES_JOURNAL_SIZE",
		"ACTIVITIES_MAX_CHANGES_LIMIT",
		"ACTIVITIES_ALLOWED_ORIGINS",
	}

	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
