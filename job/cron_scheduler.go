package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const defaultJobTimeout = 10 * time.Minute

var ErrJobNotFound = errors.New("job not found")

// JobFunc 任务执行函数
type JobFunc func(ctx context.Context) error

// JobConfig 任务配置
type JobConfig struct {
	Name        string        // 任务名称
	CronExpr    string        // cron 表达式, 支持秒级
	JobFunc     JobFunc       // 任务执行函数
	Description string        // 任务描述
	Enabled     bool          // 是否启用
	Timeout     time.Duration // 任务超时时间
}

// JobStatus 任务状态
type JobStatus struct {
	Name         string        `json:"name"`
	CronExpr     string        `json:"cron_expr"`
	Description  string        `json:"description"`
	Enabled      bool          `json:"enabled"`
	LastRun      *time.Time    `json:"last_run,omitempty"`
	NextRun      *time.Time    `json:"next_run,omitempty"`
	LastDuration time.Duration `json:"last_duration"`
	LastError    string        `json:"last_error,omitempty"`
	RunCount     int64         `json:"run_count"`
	ErrorCount   int64         `json:"error_count"`
}

// CronScheduler 定时清理任务调度器
type CronScheduler struct {
	cron        *cron.Cron
	parser      cron.Parser
	jobs        map[string]*JobConfig
	jobStatuses map[string]*JobStatus
	entries     map[string]cron.EntryID
	log         loggerv2.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
}

func NewCronScheduler(log loggerv2.Logger) *CronScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	// 秒字段可选, 同时兼容 5 段与 6 段表达式
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &CronScheduler{
		cron:        cron.New(cron.WithParser(parser)),
		parser:      parser,
		jobs:        make(map[string]*JobConfig),
		jobStatuses: make(map[string]*JobStatus),
		entries:     make(map[string]cron.EntryID),
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// AddJob 注册任务, 需要在 Start 之前调用
func (s *CronScheduler) AddJob(config *JobConfig) error {
	if config == nil {
		return errors.New("job config cannot be nil")
	}
	if config.Name == "" {
		return errors.New("job name cannot be empty")
	}
	if config.CronExpr == "" {
		return errors.New("cron expression cannot be empty")
	}
	if config.JobFunc == nil {
		return errors.New("job function cannot be nil")
	}
	if _, err := s.parser.Parse(config.CronExpr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", config.CronExpr, err)
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultJobTimeout
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[config.Name] = config
	s.jobStatuses[config.Name] = &JobStatus{
		Name:        config.Name,
		CronExpr:    config.CronExpr,
		Description: config.Description,
		Enabled:     config.Enabled,
	}

	s.log.InfoContext(s.ctx, "job added",
		logger.String("name", config.Name),
		logger.String("cronExpr", config.CronExpr),
		logger.Bool("enabled", config.Enabled),
	)
	return nil
}

func (s *CronScheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
	delete(s.jobs, name)
	delete(s.jobStatuses, name)

	s.log.InfoContext(s.ctx, "job removed", logger.String("name", name))
	return nil
}

// EnableJob 启用任务, 调度器重新 Start 后生效
func (s *CronScheduler) EnableJob(name string) error {
	return s.setEnabled(name, true)
}

// DisableJob 禁用任务, 已排期的条目立即移除
func (s *CronScheduler) DisableJob(name string) error {
	return s.setEnabled(name, false)
}

func (s *CronScheduler) setEnabled(name string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	job.Enabled = enabled
	s.jobStatuses[name].Enabled = enabled
	if !enabled {
		if id, ok := s.entries[name]; ok {
			s.cron.Remove(id)
			delete(s.entries, name)
			s.jobStatuses[name].NextRun = nil
		}
	}

	s.log.InfoContext(s.ctx, "job toggled", logger.String("name", name), logger.Bool("enabled", enabled))
	return nil
}

// Start 按当前任务表重建 cron 并启动
func (s *CronScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Stop()
	s.cron = cron.New(cron.WithParser(s.parser))
	s.entries = make(map[string]cron.EntryID)

	for name, job := range s.jobs {
		if !job.Enabled {
			continue
		}
		id, err := s.cron.AddFunc(job.CronExpr, s.wrapJobFunc(name, job))
		if err != nil {
			s.log.ErrorContext(s.ctx, "add job to cron failed", logger.String("name", name), logger.Error(err))
			continue
		}
		s.entries[name] = id
	}

	s.cron.Start()
	s.refreshNextRunLocked()
	s.log.InfoContext(s.ctx, "cron scheduler started", logger.Int("entries", len(s.entries)))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (s *CronScheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()

	<-c.Stop().Done()
	s.cancel()
	s.log.InfoContext(context.Background(), "cron scheduler stopped")
}

func (s *CronScheduler) refreshNextRunLocked() {
	for name, id := range s.entries {
		entry := s.cron.Entry(id)
		if entry.Valid() && !entry.Next.IsZero() {
			next := entry.Next
			s.jobStatuses[name].NextRun = &next
		}
	}
}

// wrapJobFunc 统一处理超时与运行统计
func (s *CronScheduler) wrapJobFunc(name string, job *JobConfig) func() {
	return func() {
		_ = s.execute(name, job)
	}
}

func (s *CronScheduler) execute(name string, job *JobConfig) error {
	startTime := time.Now()

	s.mu.Lock()
	status, ok := s.jobStatuses[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	status.LastRun = &startTime
	status.RunCount++
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(s.ctx, job.Timeout)
	defer cancel()
	ctx = loggerv2.ContextWithFields(ctx, logger.String("job", name))

	s.log.InfoContext(ctx, "job started")
	err := job.JobFunc(ctx)
	duration := time.Since(startTime)

	s.mu.Lock()
	status.LastDuration = duration
	if err != nil {
		status.ErrorCount++
		status.LastError = err.Error()
	} else {
		status.LastError = ""
	}
	if id, ok := s.entries[name]; ok {
		if entry := s.cron.Entry(id); entry.Valid() {
			next := entry.Next
			status.NextRun = &next
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.log.ErrorContext(ctx, "job failed", logger.Int64("duration_ms", duration.Milliseconds()), logger.Error(err))
		return err
	}
	s.log.InfoContext(ctx, "job completed", logger.Int64("duration_ms", duration.Milliseconds()))
	return nil
}

// GetJobStatuses 返回所有任务状态的副本
func (s *CronScheduler) GetJobStatuses() map[string]*JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*JobStatus, len(s.jobStatuses))
	for name, status := range s.jobStatuses {
		statusCopy := *status
		result[name] = &statusCopy
	}
	return result
}

func (s *CronScheduler) GetJobStatus(name string) (*JobStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, exists := s.jobStatuses[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	statusCopy := *status
	return &statusCopy, nil
}

// RunJobOnce 手动执行一次任务, 计入运行统计
func (s *CronScheduler) RunJobOnce(name string) error {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.execute(name, job)
}
