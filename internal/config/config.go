package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Providers ProvidersConfig `mapstructure:"providers"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// RedisConfig Redis 配置，Addr 为空时不启用
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JournalConfig 生成记录配置（仅元数据，不保存图片）
type JournalConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxEntries int  `mapstructure:"max_entries"` // 每个 provider 保留的记录数
}

// ProvidersConfig 图片生成服务商配置
type ProvidersConfig struct {
	Timeout     time.Duration  `mapstructure:"timeout"` // 上游请求超时
	SiliconFlow ProviderConfig `mapstructure:"siliconflow"`
	XAI         ProviderConfig `mapstructure:"xai"`
	ZhipuAI     ZhipuAIConfig  `mapstructure:"zhipuai"`
}

// ProviderConfig 单个服务商配置，BaseURL 为空时使用内置默认值
type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ZhipuAIConfig 智谱AI配置
type ZhipuAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// StrictValidation 开启 prompt/model 校验，默认关闭
	StrictValidation bool `mapstructure:"strict_validation"`
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Providers.Timeout < 0 {
		return errors.New("invalid providers timeout")
	}

	if c.Journal.Enabled && c.Journal.MaxEntries <= 0 {
		return errors.New("journal max_entries must be positive")
	}

	return nil
}
