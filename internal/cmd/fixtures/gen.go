package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type meters struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

type approach struct {
	CloseApproachDate     string            `json:"close_approach_date"`
	CloseApproachDateFull string            `json:"close_approach_date_full"`
	RelativeVelocity      map[string]string `json:"relative_velocity"`
	MissDistance          map[string]string `json:"miss_distance"`
	OrbitingBody          string            `json:"orbiting_body"`
}

type object struct {
	ID                             string            `json:"id"`
	Name                           string            `json:"name"`
	NasaJplURL                     string            `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH             float64           `json:"absolute_magnitude_h"`
	EstimatedDiameter              map[string]meters `json:"estimated_diameter"`
	IsPotentiallyHazardousAsteroid bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData              []approach        `json:"close_approach_data"`
}

type feed struct {
	ElementCount     int                                      `json:"element_count"`
	NearEarthObjects *orderedmap.OrderedMap[string, []object] `json:"near_earth_objects"`
}

// generate builds a feed shaped like a NeoWs response. Days run newest
// first, the way the upstream tends to order them.
func generate(rng *rand.Rand, start time.Time, days int, perDay int) *feed {
	f := &feed{
		NearEarthObjects: orderedmap.New[string, []object](),
	}

	id := 3000000
	for d := days - 1; d >= 0; d-- {
		day := start.AddDate(0, 0, d)
		objects := make([]object, 0, perDay)

		for i := 0; i < perDay; i++ {
			id++
			minMeters := 5 + rng.Float64()*500
			objects = append(objects, object{
				ID:                 fmt.Sprintf("%d", id),
				Name:               fmt.Sprintf("(%d %s%d)", day.Year(), string(rune('A'+i%26)), id%100),
				NasaJplURL:         fmt.Sprintf("http://ssd.jpl.nasa.gov/sbdb.cgi?sstr=%d", id),
				AbsoluteMagnitudeH: float64(170+rng.Intn(130)) / 10,
				EstimatedDiameter: map[string]meters{
					"meters": {Min: minMeters, Max: minMeters * 2.2360679775},
				},
				IsPotentiallyHazardousAsteroid: rng.Intn(10) == 0,
				CloseApproachData: []approach{
					{
						CloseApproachDate:     day.Format("2006-01-02"),
						CloseApproachDateFull: day.Add(time.Duration(rng.Intn(24*60)) * time.Minute).Format("2006-Jan-02 15:04"),
						RelativeVelocity: map[string]string{
							"kilometers_per_second": fmt.Sprintf("%.10f", 2+rng.Float64()*30),
						},
						MissDistance: map[string]string{
							"lunar": fmt.Sprintf("%.10f", rng.Float64()*200),
						},
						OrbitingBody: "Earth",
					},
				},
			})
		}

		f.NearEarthObjects.Set(day.Format("2006-01-02"), objects)
		f.ElementCount += len(objects)
	}
	return f
}

func newGenerateCommand() *cobra.Command {
	var days int
	var perDay int
	var startDate string
	var output string
	var seed int64

	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates a synthetic feed response for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 || perDay < 0 {
				return fmt.Errorf("days must be positive and per-day non-negative")
			}

			start, err := time.Parse("2006-01-02", startDate)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", startDate, err)
			}

			rng := rand.New(rand.NewSource(seed))
			f := generate(rng, start, days, perDay)

			if output == "" {
				err = encode(cmd.OutOrStdout(), f)
			} else {
				err = writeFile(output, f)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d objects over %d days\n", f.ElementCount, days)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 4, "Number of days in the feed")
	cmd.Flags().IntVarP(&perDay, "per-day", "n", 10, "Objects per day")
	cmd.Flags().StringVarP(&startDate, "start", "s", "2019-01-02", "First day of the feed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	return cmd
}

func encode(w io.Writer, f *feed) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	return nil
}

func writeFile(path string, f *feed) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encode(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
