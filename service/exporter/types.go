package exporter

import (
	"context"
	"io"
)

// AttemptExporter 导出一场比赛的本地运行/提交记录
type AttemptExporter interface {
	Export(ctx context.Context, eventID string, writer io.Writer) error
}
