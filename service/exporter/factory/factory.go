package factory

import (
	"fmt"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/to404hanga/codestudio_arena/service/exporter"
	"github.com/to404hanga/codestudio_arena/service/exporter/csv"
	"github.com/to404hanga/codestudio_arena/service/exporter/xlsx"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"gorm.io/gorm"
)

type AttemptExporterType string

const (
	CSVAttemptExporter  AttemptExporterType = "csv"
	XLSXAttemptExporter AttemptExporterType = "xlsx"
)

var ExporterSuffixMap = map[AttemptExporterType]string{
	CSVAttemptExporter:  ".csv",
	XLSXAttemptExporter: ".xlsx",
}

var ExporterContentTypeMap = map[AttemptExporterType]string{
	CSVAttemptExporter:  "text/csv; charset=utf-8",
	XLSXAttemptExporter: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// FileName 导出文件名: <比赛标题 slug>-attempts-<时间><后缀>
func FileName(title string, exporterType AttemptExporterType, now time.Time) string {
	base := slug.Make(title)
	if base == "" {
		base = "contest"
	}
	return fmt.Sprintf("%s-attempts-%s%s", base, now.Format("20060102150405"), ExporterSuffixMap[exporterType])
}

type AttemptExporterFactory struct {
	factory map[AttemptExporterType]exporter.AttemptExporter
	db      *gorm.DB
	log     loggerv2.Logger
	mux     sync.RWMutex
}

func NewAttemptExporterFactory(db *gorm.DB, log loggerv2.Logger) *AttemptExporterFactory {
	return &AttemptExporterFactory{
		factory: make(map[AttemptExporterType]exporter.AttemptExporter), // 延迟创建
		db:      db,
		log:     log,
	}
}

// GetExporter 不支持的类型返回 nil
func (f *AttemptExporterFactory) GetExporter(exporterType AttemptExporterType) exporter.AttemptExporter {
	f.mux.RLock()
	if exp, exists := f.factory[exporterType]; exists {
		f.mux.RUnlock()
		return exp
	}
	f.mux.RUnlock()

	f.mux.Lock()
	defer f.mux.Unlock()

	if exp, exists := f.factory[exporterType]; exists {
		return exp
	}

	switch exporterType {
	case CSVAttemptExporter:
		f.factory[exporterType] = csv.NewStreamableCSVAttemptExporter(f.db, f.log)
	case XLSXAttemptExporter:
		f.factory[exporterType] = xlsx.NewStreamableXLSXAttemptExporter(f.db, f.log)
	default:
		return nil
	}
	return f.factory[exporterType]
}
