package config

import "time"

// Config 配置主体
type Config struct {
	Watch      WatchConfig      `mapstructure:"watch"`
	Browser    BrowserConfig    `mapstructure:"browser"`
	DB         DBConfig         `mapstructure:"database"`
	ServerChan ServerChanConfig `mapstructure:"serverchan"`
	Email      EmailConfig      `mapstructure:"email"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

// WatchConfig 关键词监控配置
type WatchConfig struct {
	Keywords        []string      `mapstructure:"keywords" validate:"required,min=1,dive,required"`
	MaxPosts        int           `mapstructure:"max_posts" validate:"min=1,max=100"`
	Schedule        string        `mapstructure:"schedule" validate:"required"`
	KeywordDelayMin time.Duration `mapstructure:"keyword_delay_min" validate:"min=0"`
	KeywordDelayMax time.Duration `mapstructure:"keyword_delay_max" validate:"gtefield=KeywordDelayMin"`
	ScrollRounds    int           `mapstructure:"scroll_rounds" validate:"min=0"`
	ScrollStep      int           `mapstructure:"scroll_step" validate:"min=0"`
	SettleMin       time.Duration `mapstructure:"settle_min" validate:"min=0"`
	SettleMax       time.Duration `mapstructure:"settle_max" validate:"gtefield=SettleMin"`
	RunTimeout      time.Duration `mapstructure:"run_timeout"`
}

// BrowserConfig 浏览器会话配置
type BrowserConfig struct {
	UserDataDir    string          `mapstructure:"user_data_dir" validate:"required"`
	Headless       bool            `mapstructure:"headless"`
	ExecPath       string          `mapstructure:"exec_path"`
	BaseURL        string          `mapstructure:"base_url" validate:"required,url"`
	UserAgent      string          `mapstructure:"user_agent"`
	WindowWidth    int             `mapstructure:"window_width" validate:"min=0"`
	WindowHeight   int             `mapstructure:"window_height" validate:"min=0"`
	Locale         string          `mapstructure:"locale"`
	Timezone       string          `mapstructure:"timezone"`
	NavTimeout     time.Duration   `mapstructure:"nav_timeout" validate:"gt=0"`
	LoginTimeout   time.Duration   `mapstructure:"login_timeout" validate:"gt=0"`
	PollInterval   time.Duration   `mapstructure:"poll_interval" validate:"gt=0"`
	Selectors      SelectorsConfig `mapstructure:"selectors"`
}

// SelectorsConfig 页面元素选择器，随页面改版直接调整配置即可
type SelectorsConfig struct {
	LoginPromptText string     `mapstructure:"login_prompt_text"`
	LoggedIn        []string   `mapstructure:"logged_in" validate:"required,min=1"`
	SortLabel       string     `mapstructure:"sort_label"`
	Cards           [][]string `mapstructure:"cards" validate:"required,min=1"`
	Link            []string   `mapstructure:"link"`
	Title           []string   `mapstructure:"title"`
	Time            []string   `mapstructure:"time"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	DSN         string `mapstructure:"dsn" validate:"required"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

// ServerChanConfig Server酱推送配置，SendKey 为空时跳过
type ServerChanConfig struct {
	SendKey  string        `mapstructure:"send_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// EmailConfig 邮件推送配置，默认关闭
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"smtp_host" validate:"required_if=Enabled true"`
	Port     int    `mapstructure:"smtp_port"`
	SSL      bool   `mapstructure:"ssl"`
	Sender   string `mapstructure:"sender" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	Receiver string `mapstructure:"receiver" validate:"required_if=Enabled true"`
}

type KafkaConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	Brokers []string   `mapstructure:"brokers" validate:"required_if=Enabled true"`
	Topic   string     `mapstructure:"topic" validate:"required_if=Enabled true"`
	Sasl    SaslConfig `mapstructure:"sasl"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// ServerConfig 查询接口配置
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}
