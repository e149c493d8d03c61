package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// LoadConfig 从文件加载配置，环境变量 REDWATCH_* 可覆盖同名配置项
// path 为空时在 ./configs 下查找 config.yaml；文件不存在时使用默认值
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("REDWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置，返回第一个不合法的字段
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return fmt.Errorf("invalid config: field [%s] failed rule [%s]", vErrs[0].Namespace(), vErrs[0].Tag())
		}
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("watch.keywords", []string{"msi", "微星"})
	v.SetDefault("watch.max_posts", 15)
	v.SetDefault("watch.schedule", "@every 10m")
	v.SetDefault("watch.keyword_delay_min", 3*time.Second)
	v.SetDefault("watch.keyword_delay_max", 5*time.Second)
	v.SetDefault("watch.scroll_rounds", 3)
	v.SetDefault("watch.scroll_step", 800)
	v.SetDefault("watch.settle_min", 2*time.Second)
	v.SetDefault("watch.settle_max", 4*time.Second)
	v.SetDefault("watch.run_timeout", 15*time.Minute)

	v.SetDefault("browser.user_data_dir", "./user_data")
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.base_url", "https://www.xiaohongshu.com")
	v.SetDefault("browser.user_agent", DefaultUserAgent)
	v.SetDefault("browser.window_width", 1280)
	v.SetDefault("browser.window_height", 800)
	v.SetDefault("browser.locale", "zh-CN")
	v.SetDefault("browser.timezone", "Asia/Shanghai")
	v.SetDefault("browser.nav_timeout", 30*time.Second)
	v.SetDefault("browser.login_timeout", 300*time.Second)
	v.SetDefault("browser.poll_interval", time.Second)
	v.SetDefault("browser.selectors.login_prompt_text", "登录")
	v.SetDefault("browser.selectors.logged_in", []string{`[class*="user"]`, `[class*="avatar"]`, `[class*="header-user"]`})
	v.SetDefault("browser.selectors.sort_label", "最新")
	v.SetDefault("browser.selectors.cards", [][]string{
		{`section.note-item`, `div[class*="note-item"]`, `a[href*="/explore/"]`, `a[href*="/discovery/item/"]`},
		{`[class*="note"]`, `[class*="card"]`},
	})
	v.SetDefault("browser.selectors.link", []string{`a[href*="/explore/"]`, `a[href*="/discovery/"]`})
	v.SetDefault("browser.selectors.title", []string{`[class*="title"]`, `[class*="desc"]`, `span`, `p`})
	v.SetDefault("browser.selectors.time", []string{`[class*="time"]`, `[class*="date"]`})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./xhs_notes.db")
	v.SetDefault("database.max_idle", 1)
	v.SetDefault("database.max_open", 1)
	v.SetDefault("database.max_lifetime", 30)

	v.SetDefault("serverchan.send_key", "")
	v.SetDefault("serverchan.endpoint", "https://sctapi.ftqq.com")
	v.SetDefault("serverchan.timeout", 10*time.Second)

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "smtp.qq.com")
	v.SetDefault("email.smtp_port", 465)
	v.SetDefault("email.ssl", true)
	v.SetDefault("email.sender", "")
	v.SetDefault("email.password", "")
	v.SetDefault("email.receiver", "")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "redwatch.notes")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.pool_size", 2)
	v.SetDefault("redis.lock_ttl", 30*time.Minute)

	v.SetDefault("server.enabled", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}
