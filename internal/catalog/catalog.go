package catalog

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

/*
The catalog is a record of what a snapshot processed.
It is reported when the run finishes and is not stored
alongside the output.
*/

// Catalog represents the catalog of records that have been processed
type Catalog struct {
	ID                  uuid.UUID `json:"id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Source              string    `json:"source"`
	DateRangeFrom       string    `json:"date_range_from"`
	DateRangeTo         string    `json:"date_range_to"`
	NumDays             int       `json:"num_days"`
	NumSourceRecords    int       `json:"num_source_records"`
	NumRecordsProcessed int       `json:"num_records_processed"`
	Output              string    `json:"output"`
	Completed           bool      `json:"completed"`
}

func (c *Catalog) Duration() time.Duration {
	return c.EndTime.Sub(c.StartTime)
}

func (c *Catalog) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", c.ID.String())
	enc.AddString("source", c.Source)
	enc.AddString("date_range_from", c.DateRangeFrom)
	enc.AddString("date_range_to", c.DateRangeTo)
	enc.AddInt("num_days", c.NumDays)
	enc.AddInt("num_source_records", c.NumSourceRecords)
	enc.AddInt("num_records_processed", c.NumRecordsProcessed)
	enc.AddString("output", c.Output)
	enc.AddBool("completed", c.Completed)
	enc.AddDuration("duration", c.Duration())
	return nil
}

var _ zapcore.ObjectMarshaler = (*Catalog)(nil)

// Field is a zap field carrying the whole catalog.
func (c *Catalog) Field() zap.Field {
	return zap.Object("catalog", c)
}
