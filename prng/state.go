package prng

// State is a copy of a generator's internals, for inspection only.
type State struct {
	Multiplier uint64
	Modulus    uint64
	// Increment used by the most recent draw; zero before the first one.
	Increment uint32
	Seed      uint64
	Counter   uint64
	// Nil until SaveState has been called.
	SavedSeed *uint64
}

func (g *Generator) State() State {
	st := State{
		Multiplier: Multiplier,
		Modulus:    Modulus,
		Increment:  g.increment,
		Seed:       g.seed,
		Counter:    g.counter,
	}
	if g.saved {
		saved := g.savedSeed
		st.SavedSeed = &saved
	}
	return st
}
