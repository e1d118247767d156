package config

type BaseCronJobConfig struct {
	CronExpr string `yaml:"cronExpr" mapstructure:"cronExpr" validate:"required_if=Enabled true"`
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

type AttemptCleanerConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`

	TimeRange int `yaml:"timeRange" mapstructure:"timeRange" validate:"min=0"` // 单位: 天
}

func (*AttemptCleanerConfig) Key() string {
	return "attemptCleaner"
}

// DraftCleanerConfig 草稿默认永久保留, 需要显式开启
type DraftCleanerConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`

	RetentionDays int `yaml:"retentionDays" mapstructure:"retentionDays" validate:"required_if=Enabled true,min=0"`
}

func (*DraftCleanerConfig) Key() string {
	return "draftCleaner"
}
