package random

// Scripted replays fixed draws, which lets tests pin exact combat, hazard
// and loot outcomes. Once a queue is exhausted it returns the fallback
// values: Float64 yields FloatFallback and Intn yields 0.
type Scripted struct {
	Floats        []float64
	Ints          []int
	FloatFallback float64
}

// NewScripted builds a source that answers every chance roll with "no"
// (0.999) once the scripted floats run out.
func NewScripted(floats ...float64) *Scripted {
	return &Scripted{Floats: floats, FloatFallback: 0.999}
}

// Float64 returns the next scripted float.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return s.FloatFallback
	}
	f := s.Floats[0]
	s.Floats = s.Floats[1:]
	return f
}

// Intn returns the next scripted int, reduced modulo n.
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

// Push appends more scripted floats.
func (s *Scripted) Push(floats ...float64) {
	s.Floats = append(s.Floats, floats...)
}

// PushInts appends more scripted ints.
func (s *Scripted) PushInts(ints ...int) {
	s.Ints = append(s.Ints, ints...)
}
