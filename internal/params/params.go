// Package params holds the small set of tunable constants shared across
// the simulation core, grounded on the original implementation's
// constants module. Callers needing run-time overrides go through
// internal/config; these are the hard-coded defaults used when no
// override is supplied.
package params

const (
	// CommunicationRange is the Manhattan distance within which two
	// agents exchange maps and can rendezvous.
	CommunicationRange = 2

	// InitialScoutDepth is the length of the first boundary-scouting leg.
	InitialScoutDepth = 3

	// ExpectedRotationDifference is the |r0-r1| threshold (in 90-degree
	// steps) the boundary analyzer classifies a closed loop against.
	ExpectedRotationDifference = 4

	// DefaultTickCap terminates the simulation if no natural
	// termination is reached.
	DefaultTickCap = 500
)

// Params bundles the tunable values a run may override via internal/config,
// as opposed to ExpectedRotationDifference, which is a protocol invariant
// and never configurable. It is threaded from the CLI down through
// simulation.NewManager, agent.New and phase.New to scout.New and the
// agent-to-agent range checks, so a single override point reaches every
// place CommunicationRange or InitialScoutDepth matters.
type Params struct {
	CommunicationRange int
	InitialScoutDepth  int
}

// Defaults returns a Params populated from this package's constants.
func Defaults() Params {
	return Params{
		CommunicationRange: CommunicationRange,
		InitialScoutDepth:  InitialScoutDepth,
	}
}
