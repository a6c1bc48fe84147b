package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/synergy/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.Iterations, convey.ShouldEqual, 500)
			convey.So(cfg.DefaultMode, convey.ShouldEqual, "standUnited")
			convey.So(cfg.RateLimitRequests, convey.ShouldEqual, 10)
			convey.So(cfg.RateLimitWindow(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.SearchTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "synergy")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "optimizer")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Origins(t *testing.T) {
	convey.Convey("Given a comma-separated origin list", t, func() {
		cfg := config.New()
		cfg.CORSOrigins = " https://a.example , ,https://b.example"

		convey.Convey("Then blanks should be dropped and entries trimmed", func() {
			convey.So(cfg.Origins(), convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
		})

		convey.Convey("Then an empty list should yield no origins", func() {
			cfg.CORSOrigins = ""
			convey.So(cfg.Origins(), convey.ShouldBeEmpty)
		})
	})
}

func TestConfig_ConstLabels(t *testing.T) {
	convey.Convey("Given a comma-separated metrics label list", t, func() {
		cfg := config.New()
		cfg.MetricsLabels = " region = euw, ,env=prod"

		convey.Convey("Then pairs should be trimmed and blanks skipped", func() {
			labels, err := cfg.ConstLabels()
			convey.So(err, convey.ShouldBeNil)
			convey.So(labels, convey.ShouldResemble, map[string]string{"region": "euw", "env": "prod"})
		})

		convey.Convey("Then an empty list should yield no labels", func() {
			cfg.MetricsLabels = ""
			labels, err := cfg.ConstLabels()
			convey.So(err, convey.ShouldBeNil)
			convey.So(labels, convey.ShouldBeNil)
		})

		convey.Convey("Then a pair without a key should be rejected", func() {
			cfg.MetricsLabels = "=euw"
			_, err := cfg.ConstLabels()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad setting each", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"no workers", func(c *config.Config) { c.WorkerCount = 0 }},
			{"no queue", func(c *config.Config) { c.QueueSize = 0 }},
			{"no iterations", func(c *config.Config) { c.Iterations = 0 }},
			{"no timeout", func(c *config.Config) { c.SearchTimeoutMS = 0 }},
			{"negative limit", func(c *config.Config) { c.RateLimitRequests = -1 }},
			{"limit no window", func(c *config.Config) { c.RateLimitWindowMS = 0 }},
			{"unknown mode", func(c *config.Config) { c.DefaultMode = "chaos" }},
			{"malformed metrics label", func(c *config.Config) { c.MetricsLabels = "region" }},
		}
		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+tc.name+" should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then disabling the rate limit should not require a window", func() {
			cfg := config.New()
			cfg.RateLimitRequests = 0
			cfg.RateLimitWindowMS = 0
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
