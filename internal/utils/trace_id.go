package utils

import "github.com/google/uuid"

// TraceIDGenerator produces the X-Trace-ID values sent with gateway
// requests. Ids are UUIDv7 so that gateway logs sort by request time.
type TraceIDGenerator struct {
	newV7 func() (uuid.UUID, error)
}

func NewTraceIDGenerator() *TraceIDGenerator {
	return &TraceIDGenerator{newV7: uuid.NewV7}
}

// Generate returns a new trace id. A random UUIDv4 is used when the v7
// source fails.
func (g *TraceIDGenerator) Generate() string {
	id, err := g.newV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
