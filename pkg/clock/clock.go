package clock

import "time"

// Clock abstrae la hora actual para que el ledger y los cortes de período de
// depreciación sean deterministas en los tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func NewSystemClock() Clock { return systemClock{} }

// Fixed devuelve un reloj congelado en el instante dado.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }
