package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	r := NewRecord(
		[]string{"date", "name", "is_potentially_hazardous_asteroid"},
		[]any{"2019-01-02", "(2019 AB)", true},
	)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"date", "name", "is_potentially_hazardous_asteroid"}, r.Fields())
	assert.Equal(t, []any{"2019-01-02", "(2019 AB)", true}, r.Values())
	assert.Equal(t, map[string]any{
		"date":                              "2019-01-02",
		"name":                              "(2019 AB)",
		"is_potentially_hazardous_asteroid": true,
	}, r.Map())
}
