package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080, Mode: "release"},
		Journal: JournalConfig{
			Enabled:    true,
			MaxEntries: 100,
		},
		Providers: ProvidersConfig{Timeout: 2 * time.Minute},
	}
}

func TestConfig_Validate(t *testing.T) {
	Convey("Validate 检查端口、模式与上游配置", t, func() {
		Convey("合法配置通过", func() {
			So(validConfig().Validate(), ShouldBeNil)
		})

		Convey("端口越界", func() {
			cfg := validConfig()
			cfg.Server.Port = 70000
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("未知模式", func() {
			cfg := validConfig()
			cfg.Server.Mode = "prod"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("负数超时", func() {
			cfg := validConfig()
			cfg.Providers.Timeout = -time.Second
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("启用记录但容量为 0", func() {
			cfg := validConfig()
			cfg.Journal.MaxEntries = 0
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Journal.Enabled = false
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}
