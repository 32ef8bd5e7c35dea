package e2e

import "testing"

// Stage is how far a webhook scenario has progressed.
type Stage int

const (
	StageIdle Stage = iota
	StageWebhookRegistered
	StageActionPerformed
	StageRequestReceived
	StageVerified
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageWebhookRegistered:
		return "WebhookRegistered"
	case StageActionPerformed:
		return "ActionPerformed"
	case StageRequestReceived:
		return "RequestReceived"
	case StageVerified:
		return "Verified"
	default:
		return "Unknown"
	}
}

// Scenario walks a webhook test through its stages in order, so a failure
// reports which stage it could not reach.
type Scenario struct {
	t     testing.TB
	name  string
	stage Stage
}

func NewScenario(t testing.TB, name string) *Scenario {
	return &Scenario{t: t, name: name}
}

func (s *Scenario) Stage() Stage {
	return s.stage
}

// Step runs fn to reach next, which must directly follow the current stage.
func (s *Scenario) Step(next Stage, fn func() error) {
	s.t.Helper()
	if next != s.stage+1 {
		s.t.Fatalf("%s: cannot move from %s to %s", s.name, s.stage, next)
	}
	if err := fn(); err != nil {
		s.t.Fatalf("%s: failed reaching %s: %v", s.name, next, err)
	}
	s.stage = next
}
