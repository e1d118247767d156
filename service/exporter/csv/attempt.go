package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/to404hanga/codestudio_arena/service/exporter"
	"github.com/to404hanga/codestudio_arena/service/exporter/common"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"gorm.io/gorm"
)

type StreamableCSVAttemptExporter struct {
	log loggerv2.Logger
	db  *gorm.DB
}

var _ exporter.AttemptExporter = (*StreamableCSVAttemptExporter)(nil)

func NewStreamableCSVAttemptExporter(db *gorm.DB, log loggerv2.Logger) *StreamableCSVAttemptExporter {
	return &StreamableCSVAttemptExporter{
		db:  db,
		log: log,
	}
}

func (e *StreamableCSVAttemptExporter) Export(ctx context.Context, eventID string, writer io.Writer) error {
	ectx, cancel := context.WithCancel(ctx)
	defer cancel()

	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write(common.AttemptHeaders); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	attemptCh, errCh := common.StreamAttempts(e.db, ectx, eventID)
	rows := 0
	for attempts := range attemptCh {
		for _, record := range common.AttemptRecords(attempts) {
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("write record failed: %w", err)
			}
		}
		rows += len(attempts)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("sub goroutine fetch attempts failed: %w", err)
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush csv failed: %w", err)
	}
	e.log.DebugContext(ctx, "csv attempts exported", logger.String("event_id", eventID), logger.Int("rows", rows))
	return nil
}
