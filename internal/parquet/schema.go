package parquet

import (
	"fmt"
	"strings"

	"github.com/turbolytics/neoarchive/internal"
)

type Field struct {
	Name           string
	Type           string
	ConvertedType  string
	RepetitionType string
}

type Schema []Field

// AsteroidSchema matches asteroids.RecordFields column for column.
var AsteroidSchema = Schema{
	{Name: "date", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
	{Name: "name", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
	{Name: "nasa_jpl_url", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
	{Name: "absolute_magnitude_h", Type: "DOUBLE"},
	{Name: "estimated_diameter_min_meters", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
	{Name: "estimated_diameter_max_meters", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
	{Name: "is_potentially_hazardous_asteroid", Type: "BOOLEAN"},
	{Name: "close_approach_date", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
	{Name: "relative_velocity_km_s", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
	{Name: "miss_distance_lunar", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
}

func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// ToGoParquetSchema renders the schema as parquet-go metadata tags.
func (s Schema) ToGoParquetSchema() []string {
	schema := make([]string, len(s))
	for i, field := range s {
		parts := []string{
			fmt.Sprintf("name=%s", field.Name),
			fmt.Sprintf("type=%s", field.Type),
		}
		if field.ConvertedType != "" {
			parts = append(parts, fmt.Sprintf("convertedtype=%s", field.ConvertedType))
		}
		if field.RepetitionType != "" {
			parts = append(parts, fmt.Sprintf("repetitiontype=%s", field.RepetitionType))
		}
		schema[i] = strings.Join(parts, ", ")
	}

	return schema
}

func (s Schema) RecordToParquetRow(r *internal.Record) ([]any, error) {
	if len(s) != r.Len() {
		return nil, fmt.Errorf(
			"schema and record fields mismatch: schema has %d fields, record has %d fields",
			len(s),
			r.Len(),
		)
	}

	row := make([]any, len(s))
	values := r.Values()
	fields := r.Fields()

	for i, field := range s {
		if fields[i] != field.Name {
			return nil, fmt.Errorf("field %d: schema expects %q, record has %q", i, field.Name, fields[i])
		}
		row[i] = values[i]
	}

	return row, nil
}
