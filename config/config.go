package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Keyed 所有配置块都通过 Key() 声明自己在配置文件中的位置
type Keyed interface {
	Key() string
}

var validate = validator.New()

// Load 从 viper 读取配置块并校验
func Load[T Keyed](cfg T) error {
	if err := viper.UnmarshalKey(cfg.Key(), cfg); err != nil {
		return fmt.Errorf("unmarshal %s config failed: %w", cfg.Key(), err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validate %s config failed: %w", cfg.Key(), err)
	}
	return nil
}

type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `yaml:"development" mapstructure:"development"`
	Encoding    string `yaml:"encoding" mapstructure:"encoding" validate:"omitempty,oneof=json console"`
}

func (*LoggerConfig) Key() string {
	return "logger"
}

// BuildZap 根据配置构建 zap 实例, 由 ioc 包装成 loggerv2.Logger
func (c *LoggerConfig) BuildZap() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Encoding != "" {
		zc.Encoding = c.Encoding
	}
	if c.Level != "" {
		level, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level failed: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	return zc.Build()
}

type GinConfig struct {
	Addr             string   `yaml:"addr" mapstructure:"addr" validate:"required"`
	AllowOrigins     []string `yaml:"allowOrigins" mapstructure:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods" mapstructure:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders" mapstructure:"allowHeaders"`
	ExposeHeaders    []string `yaml:"exposeHeaders" mapstructure:"exposeHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials" mapstructure:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge" mapstructure:"maxAge"` // 单位: 秒
	EnablePprof      bool     `yaml:"enablePprof" mapstructure:"enablePprof"`

	// AuthSecret 非空时会话接口要求携带该密钥签发的 JWT, 优先读取环境变量 ARENA_HOST_SECRET
	AuthSecret string `yaml:"authSecret" mapstructure:"authSecret"`
}

func (*GinConfig) Key() string {
	return "gin"
}

// ArenaAPIConfig CodeStudio 后端 API 配置, Token 优先读取环境变量 ARENA_API_TOKEN
type ArenaAPIConfig struct {
	BaseURL string `yaml:"baseURL" mapstructure:"baseURL" validate:"required,url"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout" validate:"min=0"` // 单位: 毫秒
	Token   string `yaml:"token" mapstructure:"token"`
}

func (*ArenaAPIConfig) Key() string {
	return "arenaAPI"
}

type SessionConfig struct {
	ArenaPath       string `yaml:"arenaPath" mapstructure:"arenaPath"`             // 退出或无权限时跳转的比赛列表页
	DefaultLanguage string `yaml:"defaultLanguage" mapstructure:"defaultLanguage"` // 未指定语言时使用
}

func (*SessionConfig) Key() string {
	return "session"
}

const (
	DraftDriverMemory = "memory"
	DraftDriverRedis  = "redis"
	DraftDriverGorm   = "gorm"
	DraftDriverMinIO  = "minio"
)

type DraftConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver" validate:"required,oneof=memory redis gorm minio"`
	Bucket string `yaml:"bucket" mapstructure:"bucket" validate:"required_if=Driver minio"`
}

func (*DraftConfig) Key() string {
	return "draft"
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr" validate:"required"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

func (*RedisConfig) Key() string {
	return "redis"
}

const (
	DBDriverMySQL  = "mysql"
	DBDriverSQLite = "sqlite"
)

type DBConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver" validate:"omitempty,oneof=mysql sqlite"`
	DSN          string `yaml:"dsn" mapstructure:"dsn" validate:"required"`
	MaxOpenConns int    `yaml:"maxOpenConns" mapstructure:"maxOpenConns"`
	MaxIdleConns int    `yaml:"maxIdleConns" mapstructure:"maxIdleConns"`
	AutoMigrate  bool   `yaml:"autoMigrate" mapstructure:"autoMigrate"`
}

func (*DBConfig) Key() string {
	return "db"
}

// MinIOConfig 访问密钥从环境变量 MINIO_ACCESS_KEY_ID / MINIO_SECRET_ACCESS_KEY 读取
type MinIOConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required"`
	UseSSL   bool   `yaml:"useSSL" mapstructure:"useSSL"`
}

func (*MinIOConfig) Key() string {
	return "minio"
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled" mapstructure:"enabled"`
	Addrs   []string `yaml:"addrs" mapstructure:"addrs" validate:"required_if=Enabled true"`
	Topic   string   `yaml:"topic" mapstructure:"topic"`
}

func (*KafkaConfig) Key() string {
	return "kafka"
}
