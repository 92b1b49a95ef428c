package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentflow/internal/config"
)

func TestDefaults(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the simulated-backend defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.LatencyMinMS, ShouldEqual, 200)
			So(cfg.LatencyMaxMS, ShouldEqual, 1200)
			So(cfg.WriteFailureRate, ShouldEqual, 0.08)
			So(cfg.MaxPageSize, ShouldEqual, 500)
			So(cfg.SeedOnStart, ShouldBeTrue)
		})
	})
}

func TestEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("TALENTFLOW_ADDR", ":8080")
		t.Setenv("TALENTFLOW_WRITE_FAILURE_RATE", "0.5")
		t.Setenv("TALENTFLOW_LATENCY_MIN_MS", "0")
		t.Setenv("TALENTFLOW_LATENCY_MAX_MS", "10")
		t.Setenv("TALENTFLOW_SEED_ON_START", "false")

		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.WriteFailureRate, ShouldEqual, 0.5)
			So(cfg.LatencyMinMS, ShouldEqual, 0)
			So(cfg.LatencyMaxMS, ShouldEqual, 10)
			So(cfg.SeedOnStart, ShouldBeFalse)
		})
	})
}

func TestFileLayer(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := "addr: \":7070\"\nlatency_min_ms: 5\nlatency_max_ms: 50\nsnapshot_path: /tmp/talentflow.json\n"
		So(os.WriteFile(path, []byte(yaml), 0o644), ShouldBeNil)
		t.Setenv("TALENTFLOW_CONFIG", path)

		Convey("Then file values layer over defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.LatencyMinMS, ShouldEqual, 5)
			So(cfg.SnapshotPath, ShouldEqual, "/tmp/talentflow.json")
			So(cfg.WriteFailureRate, ShouldEqual, 0.08)
		})

		Convey("Then env values win over the file", func() {
			t.Setenv("TALENTFLOW_ADDR", ":6060")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})

	Convey("A missing config file is a load error", t, func() {
		t.Setenv("TALENTFLOW_CONFIG", "/does/not/exist.yaml")
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
	})
}

func TestValidation(t *testing.T) {
	Convey("Given invalid settings", t, func() {
		Convey("An inverted latency range is rejected", func() {
			t.Setenv("TALENTFLOW_LATENCY_MIN_MS", "500")
			t.Setenv("TALENTFLOW_LATENCY_MAX_MS", "100")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("A failure rate outside [0,1] is rejected", func() {
			t.Setenv("TALENTFLOW_WRITE_FAILURE_RATE", "1.5")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("An empty addr is rejected", func() {
			t.Setenv("TALENTFLOW_ADDR", "")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("A non-positive page cap is rejected", func() {
			t.Setenv("TALENTFLOW_MAX_PAGE_SIZE", "0")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
