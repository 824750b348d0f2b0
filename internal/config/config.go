package config

import (
	"github.com/spf13/viper"

	"github.com/blues/mfs/internal/logger"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Campaign CampaignConfig `mapstructure:"campaign"`
	Treasury TreasuryConfig `mapstructure:"treasury"`
	Task     TaskConfig     `mapstructure:"task"`
	Event    EventConfig    `mapstructure:"event"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// CampaignConfig 活动创建参数，仅首次启动时生效，之后从数据库恢复
type CampaignConfig struct {
	Owner        string `mapstructure:"owner"`         // 所有者地址
	GoalAmount   string `mapstructure:"goal_amount"`   // 目标金额（最小货币单位）
	DurationDays int    `mapstructure:"duration_days"` // 活动时长（天）
}

// TreasuryConfig 资金出口配置
type TreasuryConfig struct {
	Mode          string `mapstructure:"mode"` // memory, ethereum
	RPCURL        string `mapstructure:"rpc_url"`
	ChainID       int64  `mapstructure:"chain_id"`
	PrivateKey    string `mapstructure:"private_key"`
	Confirmations int    `mapstructure:"confirmations"`
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

// EventConfig 通知分发配置
type EventConfig struct {
	PoolSize int `mapstructure:"pool_size"` // 协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/mfs")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "milestone_funding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("campaign.goal_amount", "0")
	viper.SetDefault("campaign.duration_days", 30)
	viper.SetDefault("treasury.mode", "memory")
	viper.SetDefault("treasury.chain_id", 1)
	viper.SetDefault("treasury.confirmations", 0)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("event.pool_size", 4)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
