package repository

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"vehicle-locator/internal/geo"
	"vehicle-locator/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t testing.TB, kind EngineKind) Engine {
	t.Helper()
	engine, err := NewEngine(kind, zerolog.Nop())
	require.NoError(t, err)
	return engine
}

func sorted(ids []string) []string {
	out := append([]string{}, ids...)
	sort.Strings(out)
	return out
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		kind     EngineKind
		expected interface{}
	}{
		{EngineGrid, &GridRepository{}},
		{"", &GridRepository{}},
		{EngineScan, &ScanRepository{}},
		{EngineRTree, &RTreeRepository{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			engine, err := NewEngine(tt.kind, zerolog.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.expected, engine)
			assert.Equal(t, 0, engine.Len())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		engine, err := NewEngine("quadtree", zerolog.Nop())
		assert.Nil(t, engine)
		assert.ErrorIs(t, err, ErrUnknownEngine)
	})
}

func TestEngines_ExampleScenario(t *testing.T) {
	for _, kind := range EngineKinds {
		t.Run(string(kind), func(t *testing.T) {
			engine := newEngine(t, kind)
			engine.Report("a", models.Coordinate{Latitude: 1, Longitude: 1})
			engine.Report("b", models.Coordinate{Latitude: -2, Longitude: -2})
			engine.Report("c", models.Coordinate{Latitude: 2, Longitude: 2})

			testCases := []struct {
				name     string
				center   models.Coordinate
				radiusKm float64
				expected []string
			}{
				{"origin 158km", models.Coordinate{Latitude: 0, Longitude: 0}, 158, []string{"a"}},
				{"(1,1) 316km", models.Coordinate{Latitude: 1, Longitude: 1}, 316, []string{"a", "c"}},
				{"(-2.5,-2.5) 158km", models.Coordinate{Latitude: -2.5, Longitude: -2.5}, 158, []string{"b"}},
				{"origin 157km", models.Coordinate{Latitude: 0, Longitude: 0}, 157, nil},
				{"origin 320km", models.Coordinate{Latitude: 0, Longitude: 0}, 320, []string{"a", "b", "c"}},
			}

			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					assert.Equal(t, tc.expected, sortedOrNil(engine.Query(tc.center, tc.radiusKm)))
				})
			}
		})
	}
}

func sortedOrNil(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return sorted(ids)
}

func TestEngines_Relocation(t *testing.T) {
	for _, kind := range EngineKinds {
		t.Run(string(kind), func(t *testing.T) {
			engine := newEngine(t, kind)

			path := []models.Coordinate{
				{Latitude: 10.5, Longitude: 10.5},
				{Latitude: 10.7, Longitude: 10.2},
				{Latitude: -40.1, Longitude: 170.3},
				{Latitude: 0.2, Longitude: -0.3},
			}
			for _, loc := range path {
				engine.Report("truck", loc)
			}

			last := path[len(path)-1]
			loc, ok := engine.Locate("truck")
			require.True(t, ok)
			assert.Equal(t, last, loc)
			assert.Equal(t, 1, engine.Len())

			for _, prev := range path[:len(path)-1] {
				assert.Empty(t, engine.Query(prev, 5), "still found at %v", prev)
			}
			assert.Equal(t, []string{"truck"}, engine.Query(last, 1))
		})
	}
}

func TestEngines_IdempotentReport(t *testing.T) {
	for _, kind := range EngineKinds {
		t.Run(string(kind), func(t *testing.T) {
			engine := newEngine(t, kind)
			loc := models.Coordinate{Latitude: -33.8688, Longitude: 151.2093}

			engine.Report("ferry", loc)
			engine.Report("ferry", loc)

			assert.Equal(t, 1, engine.Len())
			got, ok := engine.Locate("ferry")
			assert.True(t, ok)
			assert.Equal(t, loc, got)
			assert.Equal(t, []string{"ferry"}, engine.Query(loc, 0.1))
		})
	}
}

func TestEngines_LocateUnknown(t *testing.T) {
	for _, kind := range EngineKinds {
		t.Run(string(kind), func(t *testing.T) {
			_, ok := newEngine(t, kind).Locate("ghost")
			assert.False(t, ok)
		})
	}
}

func TestEngines_AntimeridianAndPoles(t *testing.T) {
	for _, kind := range EngineKinds {
		t.Run(string(kind), func(t *testing.T) {
			engine := newEngine(t, kind)
			engine.Report("east", models.Coordinate{Latitude: 0, Longitude: 179.9})
			engine.Report("west", models.Coordinate{Latitude: 0, Longitude: -179.9})
			engine.Report("north-a", models.Coordinate{Latitude: 89.9, Longitude: 0})
			engine.Report("north-b", models.Coordinate{Latitude: 89.9, Longitude: 180})
			engine.Report("pole", models.Coordinate{Latitude: 90, Longitude: -45})

			assert.Equal(t, []string{"east", "west"}, sorted(engine.Query(models.Coordinate{Latitude: 0, Longitude: 180}, 15)))
			assert.Equal(t, []string{"east", "west"}, sorted(engine.Query(models.Coordinate{Latitude: 0, Longitude: -179.95}, 25)))
			assert.Equal(t, []string{"north-a", "north-b", "pole"}, sorted(engine.Query(models.Coordinate{Latitude: 89.9, Longitude: 90}, 25)))
		})
	}
}

// Every engine must return exactly the brute-force great-circle set.
func TestEngines_MatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	truth := map[string]models.Coordinate{}
	engines := map[EngineKind]Engine{}
	for _, kind := range EngineKinds {
		engines[kind] = newEngine(t, kind)
	}

	for i := 0; i < 3000; i++ {
		id := fmt.Sprintf("vehicle_%d", r.Intn(2000))
		loc := randomLocation(r)
		truth[id] = loc
		for _, engine := range engines {
			engine.Report(id, loc)
		}
	}

	for q := 0; q < 300; q++ {
		center := randomLocation(r)
		radiusKm := []float64{1, 50, 250, 1000, 5000}[r.Intn(5)]

		var expected []string
		for id, loc := range truth {
			if geo.WithinRadius(center, loc, radiusKm) {
				expected = append(expected, id)
			}
		}
		expected = sortedOrNil(expected)

		for kind, engine := range engines {
			got := engine.Query(center, radiusKm)
			require.Equal(t, expected, sortedOrNil(got), "%s query %v r=%v", kind, center, radiusKm)
		}
	}

	for kind, engine := range engines {
		assert.Equal(t, len(truth), engine.Len(), string(kind))
	}
}

// A vehicle moving between two cities must always be visible exactly once to a query
// covering both. Writers keep moving vehicles until every reader has finished its queries,
// so each query overlaps live moves.
func TestEngines_ConcurrentMovesAreAtomic(t *testing.T) {
	paris := models.Coordinate{Latitude: 48.8566, Longitude: 2.3522}
	berlin := models.Coordinate{Latitude: 52.52, Longitude: 13.405}
	between := models.Coordinate{Latitude: 50.7, Longitude: 7.9}

	const (
		vehicles      = 50
		writerCount   = 4
		readerCount   = 4
		readerQueries = 200
	)

	for _, kind := range EngineKinds {
		t.Run(string(kind), func(t *testing.T) {
			engine := newEngine(t, kind)
			for i := 0; i < vehicles; i++ {
				engine.Report(fmt.Sprintf("v%d", i), paris)
			}

			start := make(chan struct{})
			stop := make(chan struct{})
			var moves atomic.Int64

			var writers sync.WaitGroup
			for w := 0; w < writerCount; w++ {
				writers.Add(1)
				go func(worker int) {
					defer writers.Done()
					<-start
					for i := 0; ; i++ {
						select {
						case <-stop:
							return
						default:
						}
						loc := paris
						if i%2 == 0 {
							loc = berlin
						}
						engine.Report(fmt.Sprintf("v%d", (worker*13+i)%vehicles), loc)
						moves.Add(1)
					}
				}(w)
			}

			var readers sync.WaitGroup
			for q := 0; q < readerCount; q++ {
				readers.Add(1)
				go func() {
					defer readers.Done()
					<-start
					for i := 0; i < readerQueries; i++ {
						ids := engine.Query(between, 800)
						if !assert.Len(t, ids, vehicles) {
							return
						}
						unique := map[string]struct{}{}
						for _, id := range ids {
							unique[id] = struct{}{}
						}
						if !assert.Len(t, unique, vehicles) {
							return
						}
					}
				}()
			}

			close(start)
			readers.Wait()
			close(stop)
			writers.Wait()

			assert.Positive(t, moves.Load())
			assert.Equal(t, vehicles, engine.Len())
		})
	}
}

func randomLocation(r *rand.Rand) models.Coordinate {
	switch r.Intn(4) {
	case 0: // dense cluster around the origin, both sides of each axis
		return models.Coordinate{Latitude: r.Float64()*6 - 3, Longitude: r.Float64()*6 - 3}
	case 1: // near the antimeridian
		lon := 177 + r.Float64()*3
		if r.Intn(2) == 0 {
			lon = -lon
		}
		return models.Coordinate{Latitude: r.Float64()*20 - 10, Longitude: lon}
	case 2: // polar
		lat := 80 + r.Float64()*10
		if r.Intn(2) == 0 {
			lat = -lat
		}
		return models.Coordinate{Latitude: lat, Longitude: r.Float64()*360 - 180}
	default:
		return models.Coordinate{Latitude: r.Float64()*180 - 90, Longitude: r.Float64()*360 - 180}
	}
}

func generateVehicles(n int) map[string]models.Coordinate {
	r := rand.New(rand.NewSource(1))
	vehicles := make(map[string]models.Coordinate, n)
	for i := 0; i < n; i++ {
		vehicles[fmt.Sprintf("vehicle_%d", i)] = models.Coordinate{
			Latitude:  r.Float64()*20 + 30,  // 30-50
			Longitude: r.Float64()*40 - 120, // -120 to -80
		}
	}
	return vehicles
}

func BenchmarkReport(b *testing.B) {
	vehicles := generateVehicles(10000)
	ids := make([]string, 0, len(vehicles))
	for id := range vehicles {
		ids = append(ids, id)
	}

	for _, kind := range EngineKinds {
		b.Run(string(kind), func(b *testing.B) {
			engine := newEngine(b, kind)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				id := ids[i%len(ids)]
				engine.Report(id, vehicles[id])
			}
		})
	}
}

func BenchmarkQuery(b *testing.B) {
	vehicles := generateVehicles(100000)
	center := models.Coordinate{Latitude: 37.5, Longitude: -112.5}

	for _, kind := range EngineKinds {
		b.Run(string(kind), func(b *testing.B) {
			engine := newEngine(b, kind)
			for id, loc := range vehicles {
				engine.Report(id, loc)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = engine.Query(center, 50)
			}
		})
	}
}
