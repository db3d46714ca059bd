package engine

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// RandomSource равномерные значения в [0,1). Все розыгрыши одной ставки идут из одного источника
type RandomSource interface {
	Float64() float64
}

// NewSeededSource детерминированный источник для воспроизводимых тестов и симуляций
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSystemSource источник, засеянный из crypto/rand
func NewSystemSource() RandomSource {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand на поддерживаемых платформах не падает
		panic("failed to seed random source: " + err.Error())
	}
	return rand.New(rand.NewChaCha8(seed))
}

// SequenceSource возвращает заранее заданные значения по кругу
type SequenceSource struct {
	values []float64
	pos    int
}

// NewSequenceSource создаёт источник из последовательности значений
func NewSequenceSource(values ...float64) *SequenceSource {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Float64() float64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Draws сколько значений уже выдано
func (s *SequenceSource) Draws() int {
	return s.pos
}
