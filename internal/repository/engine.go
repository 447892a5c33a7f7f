package repository

import (
	"errors"
	"fmt"

	"vehicle-locator/internal/models"

	"github.com/rs/zerolog"
)

// ErrInconsistentIndex is the panic value (wrapped) raised when an engine finds its index
// disagreeing with the location store. It always means a bug in the engine, never bad input.
var ErrInconsistentIndex = errors.New("repository: index inconsistent with location store")

// ErrUnknownEngine is returned by NewEngine for an unsupported kind.
var ErrUnknownEngine = errors.New("repository: unknown engine")

// EngineKind names one of the engine implementations.
type EngineKind string

const (
	EngineGrid  EngineKind = "grid"
	EngineScan  EngineKind = "scan"
	EngineRTree EngineKind = "rtree"
)

// EngineKinds lists every supported kind, grid first.
var EngineKinds = []EngineKind{EngineGrid, EngineScan, EngineRTree}

// Engine tracks vehicle positions and answers radius queries. Callers guarantee valid
// coordinates and a positive radius.
type Engine interface {
	Report(id string, loc models.Coordinate)
	Query(center models.Coordinate, radiusKm float64) []string
	Locate(id string) (models.Coordinate, bool)
	Len() int
}

// NewEngine builds an empty engine of the given kind.
func NewEngine(kind EngineKind, logger zerolog.Logger) (Engine, error) {
	logger = logger.With().Str("engine", string(kind)).Logger()

	switch kind {
	case EngineGrid, "":
		return NewGridRepository(NewLocationStore(), logger), nil
	case EngineScan:
		return NewScanRepository(NewLocationStore()), nil
	case EngineRTree:
		return NewRTreeRepository(NewLocationStore(), logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}

// inconsistent logs the violation and panics.
func inconsistent(logger zerolog.Logger, id string, detail string) {
	logger.Error().Str("vehicle_id", id).Msg(detail)
	panic(fmt.Errorf("%w: %s (vehicle %q)", ErrInconsistentIndex, detail, id))
}
