package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/to404hanga/codestudio_arena/service/exporter"
	"github.com/to404hanga/codestudio_arena/service/exporter/common"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const sheetName = "记录"

type StreamableXLSXAttemptExporter struct {
	log loggerv2.Logger
	db  *gorm.DB
}

var _ exporter.AttemptExporter = (*StreamableXLSXAttemptExporter)(nil)

func NewStreamableXLSXAttemptExporter(db *gorm.DB, log loggerv2.Logger) *StreamableXLSXAttemptExporter {
	return &StreamableXLSXAttemptExporter{
		db:  db,
		log: log,
	}
}

func (e *StreamableXLSXAttemptExporter) Export(ctx context.Context, eventID string, writer io.Writer) error {
	ectx, cancel := context.WithCancel(ctx)
	defer cancel()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.ErrorContext(ctx, "close excel file failed", logger.Error(err))
		}
	}()

	// 默认的 Sheet1 重命名为记录表
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet failed: %w", err)
	}
	if err := e.writeHeader(f); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	attemptCh, errCh := common.StreamAttempts(e.db, ectx, eventID)
	currentRow := 2 // 第一行是表头
	for attempts := range attemptCh {
		for i, record := range common.AttemptRecords(attempts) {
			cell, err := excelize.CoordinatesToCellName(1, currentRow)
			if err != nil {
				return fmt.Errorf("get cell name failed: %w", err)
			}
			row := make([]interface{}, 0, len(record))
			for _, v := range record {
				row = append(row, v)
			}
			// 用例数按数字写入
			row[5], row[6] = attempts[i].Passed, attempts[i].Total
			if err = f.SetSheetRow(sheetName, cell, &row); err != nil {
				return fmt.Errorf("set row failed: %w", err)
			}
			currentRow++
		}
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("sub goroutine fetch attempts failed: %w", err)
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("write excel file failed: %w", err)
	}
	return nil
}

// writeHeader 写入表头并设置样式与列宽
func (e *StreamableXLSXAttemptExporter) writeHeader(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	headers := make([]interface{}, 0, len(common.AttemptHeaders))
	for _, h := range common.AttemptHeaders {
		headers = append(headers, h)
	}
	if err = f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("set header value failed: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("get cell name failed: %w", err)
	}
	if err = f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style failed: %w", err)
	}

	if err = f.SetColWidth(sheetName, "A", "A", 20); err != nil {
		return fmt.Errorf("set column width failed: %w", err)
	}
	if err = f.SetColWidth(sheetName, "B", "G", 12); err != nil {
		return fmt.Errorf("set column width failed: %w", err)
	}
	return nil
}
