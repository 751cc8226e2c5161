package asteroids

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbolytics/neoarchive/internal/neows"
)

var testRange = neows.DateRange{From: "2019-01-02", To: "2019-01-05"}

const singleObjectFeed = `{"near_earth_objects": {"2019-01-02": [{"name":"X","nasa_jpl_url":"u","absolute_magnitude_h":20,"estimated_diameter":{"meters":{"estimated_diameter_min":10.1,"estimated_diameter_max":20.2}},"is_potentially_hazardous_asteroid":false,"close_approach_data":[{"close_approach_date_full":"2019-Jan-02","relative_velocity":{"kilometers_per_second":"5.5"},"miss_distance":{"lunar":"100.25"}}]}]}}`

func decode(t *testing.T, body string) *neows.Feed {
	t.Helper()
	feed, err := neows.Decode(strings.NewReader(body))
	require.NoError(t, err)
	return feed
}

func neo(name string, lunar string) string {
	return fmt.Sprintf(`{"name":%q,"nasa_jpl_url":"u","absolute_magnitude_h":20,"estimated_diameter":{"meters":{"estimated_diameter_min":1,"estimated_diameter_max":2}},"is_potentially_hazardous_asteroid":true,"close_approach_data":[{"close_approach_date_full":"d","relative_velocity":{"kilometers_per_second":"1"},"miss_distance":{"lunar":%q}}]}`, name, lunar)
}

func TestTransformEndToEnd(t *testing.T) {
	doc, err := Transform(decode(t, singleObjectFeed), testRange)
	require.NoError(t, err)

	bs, err := json.Marshal(doc)
	require.NoError(t, err)

	expected := `{"date_range_from":"2019-01-02","date_range_to":"2019-01-05","asteroids_by_day":[{"date":"2019-01-02","asteroids":[{"name":"X","nasa_jpl_url":"u","absolute_magnitude_h":20,"estimated_diameter_min_meters":"10.100","estimated_diameter_max_meters":"20.200","is_potentially_hazardous_asteroid":false,"close_approach_date":"2019-Jan-02","relative_velocity_km_s":"5.500","miss_distance_lunar":"100.250"}]}]}`
	assert.Equal(t, expected, string(bs))
}

func TestTransformPreservesOrder(t *testing.T) {
	body := fmt.Sprintf(`{"near_earth_objects": {"2019-01-05": [%s], "2019-01-02": [%s, %s, %s], "2019-01-03": []}}`,
		neo("e", "1"),
		neo("c", "1"), neo("a", "1"), neo("b", "1"),
	)

	doc, err := Transform(decode(t, body), testRange)
	require.NoError(t, err)

	require.Len(t, doc.AsteroidsByDay, 3)
	assert.Equal(t, "2019-01-05", doc.AsteroidsByDay[0].Date)
	assert.Equal(t, "2019-01-02", doc.AsteroidsByDay[1].Date)
	assert.Equal(t, "2019-01-03", doc.AsteroidsByDay[2].Date)

	var names []string
	for _, a := range doc.AsteroidsByDay[1].Asteroids {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)

	assert.NotNil(t, doc.AsteroidsByDay[2].Asteroids)
	assert.Empty(t, doc.AsteroidsByDay[2].Asteroids)
	assert.Equal(t, 4, doc.NumAsteroids())
}

func TestTransformUsesFirstApproach(t *testing.T) {
	body := `{"near_earth_objects": {"2019-01-02": [{"name":"X","nasa_jpl_url":"u","absolute_magnitude_h":20.48,"estimated_diameter":{"meters":{"estimated_diameter_min":1,"estimated_diameter_max":2}},"is_potentially_hazardous_asteroid":true,"close_approach_data":[
		{"close_approach_date_full":"2019-Jan-02 10:00","relative_velocity":{"kilometers_per_second":"1.23456"},"miss_distance":{"lunar":"2.0005"}},
		{"close_approach_date_full":"2040-Jan-02 10:00","relative_velocity":{"kilometers_per_second":"99"},"miss_distance":{"lunar":"0.5"}}
	]}]}}`

	doc, err := Transform(decode(t, body), testRange)
	require.NoError(t, err)

	a := doc.AsteroidsByDay[0].Asteroids[0]
	assert.Equal(t, "2019-Jan-02 10:00", a.CloseApproachDate)
	assert.Equal(t, "1.235", a.RelativeVelocityKmS)
	assert.Equal(t, "2.001", a.MissDistanceLunar)
	assert.Equal(t, json.RawMessage("20.48"), a.AbsoluteMagnitudeH)
	assert.True(t, a.IsPotentiallyHazardousAsteroid)
}

func TestTransformMissingFields(t *testing.T) {
	full := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(neo("X", "1")), &full))

	tests := []struct {
		name  string
		edit  func(m map[string]any)
		field string
	}{
		{"name", func(m map[string]any) { delete(m, "name") }, `"name"`},
		{"url", func(m map[string]any) { delete(m, "nasa_jpl_url") }, `"nasa_jpl_url"`},
		{"null magnitude", func(m map[string]any) { m["absolute_magnitude_h"] = nil }, `"absolute_magnitude_h"`},
		{"diameter", func(m map[string]any) { delete(m, "estimated_diameter") }, `"estimated_diameter"`},
		{"meters", func(m map[string]any) { m["estimated_diameter"] = map[string]any{} }, `"estimated_diameter.meters"`},
		{"diameter min", func(m map[string]any) {
			m["estimated_diameter"] = map[string]any{"meters": map[string]any{"estimated_diameter_max": 1}}
		}, `"estimated_diameter.meters.estimated_diameter_min"`},
		{"hazard", func(m map[string]any) { delete(m, "is_potentially_hazardous_asteroid") }, `"is_potentially_hazardous_asteroid"`},
		{"no approaches", func(m map[string]any) { m["close_approach_data"] = []any{} }, `"close_approach_data[0]"`},
		{"approach date", func(m map[string]any) {
			m["close_approach_data"] = []any{map[string]any{
				"relative_velocity": map[string]any{"kilometers_per_second": "1"},
				"miss_distance":     map[string]any{"lunar": "1"},
			}}
		}, `"close_approach_data[0].close_approach_date_full"`},
		{"lunar", func(m map[string]any) {
			m["close_approach_data"] = []any{map[string]any{
				"close_approach_date_full": "d",
				"relative_velocity":        map[string]any{"kilometers_per_second": "1"},
				"miss_distance":            map[string]any{"kilometers": "1"},
			}}
		}, `"close_approach_data[0].miss_distance.lunar"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := map[string]any{}
			bs, _ := json.Marshal(full)
			require.NoError(t, json.Unmarshal(bs, &m))
			tt.edit(m)

			obj, err := json.Marshal(m)
			require.NoError(t, err)

			body := fmt.Sprintf(`{"near_earth_objects": {"2019-01-02": [%s, %s]}}`, neo("ok", "1"), obj)
			doc, err := Transform(decode(t, body), testRange)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, ErrMissingField))
			assert.Contains(t, err.Error(), "2019-01-02[1]")
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestTransformMalformedNumber(t *testing.T) {
	body := fmt.Sprintf(`{"near_earth_objects": {"2019-01-02": [%s, %s]}}`, neo("ok", "1"), neo("X", "far away"))

	doc, err := Transform(decode(t, body), testRange)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, ErrMalformedNumber))
	assert.Contains(t, err.Error(), "2019-01-02[1]")
	assert.Contains(t, err.Error(), "close_approach_data[0].miss_distance.lunar")
}

func TestTransformPaddedNumber(t *testing.T) {
	body := fmt.Sprintf(`{"near_earth_objects": {"2019-01-02": [%s]}}`, neo("X", " 5.5 "))

	doc, err := Transform(decode(t, body), testRange)
	require.NoError(t, err)
	assert.Equal(t, "5.500", doc.AsteroidsByDay[0].Asteroids[0].MissDistanceLunar)
}

func TestTransformMagnitudePassThrough(t *testing.T) {
	body := strings.Replace(singleObjectFeed, `"absolute_magnitude_h":20`, `"absolute_magnitude_h":"20"`, 1)

	doc, err := Transform(decode(t, body), testRange)
	require.NoError(t, err)

	bs, err := json.Marshal(doc.AsteroidsByDay[0].Asteroids[0])
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"absolute_magnitude_h":"20",`)

	records, err := doc.Records()
	require.NoError(t, err)
	assert.Equal(t, float64(20), records[0].Values()[3])
}

func TestTransformNilFeed(t *testing.T) {
	_, err := Transform(nil, testRange)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestRecords(t *testing.T) {
	doc, err := Transform(decode(t, singleObjectFeed), testRange)
	require.NoError(t, err)

	records, err := doc.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, RecordFields, records[0].Fields())
	assert.Equal(t, []any{
		"2019-01-02", "X", "u", float64(20), "10.100", "20.200", false, "2019-Jan-02", "5.500", "100.250",
	}, records[0].Values())
}
