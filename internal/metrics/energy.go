package metrics

import (
	"math"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

// Energy is the running mean of a Hamiltonian's energy.
type Energy struct {
	name        string
	h           dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(h dynamo.Hamiltonian) *Energy {
	return &Energy{name: "energy", h: h}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State) {
	e.totalEnergy += e.h.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure from the first observed
// energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	h             dynamo.Hamiltonian
}

func NewEnergyDrift(h dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", h: h}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State) {
	e.ObserveEnergy(e.h.Energy(x))
}

// ObserveEnergy records an already computed energy value.
func (e *EnergyDrift) ObserveEnergy(energy float64) {
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }

func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
