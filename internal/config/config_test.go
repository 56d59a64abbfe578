package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/mergington/activities/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ChangeQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, max(runtime.NumCPU()/2, 1))
			convey.So(cfg.JournalSize, convey.ShouldEqual, 1_000)
			convey.So(cfg.MaxChangesLimit, convey.ShouldEqual, 100)
			convey.So(cfg.AllowedOrigins, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad setting each", t, func() {
		cases := map[string]func(*config.Config){
			"addr":              func(c *config.Config) { c.Addr = " " },
			"log_format":        func(c *config.Config) { c.LogFormat = "xml" },
			"queue_size":        func(c *config.Config) { c.ChangeQueueSize = 0 },
			"worker_count":      func(c *config.Config) { c.WorkerCount = -1 },
			"journal_size":      func(c *config.Config) { c.JournalSize = 0 },
			"max_changes_limit": func(c *config.Config) { c.MaxChangesLimit = 0 },
		}

		for key, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, key)
		}
	})
}
