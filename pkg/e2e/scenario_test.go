package e2e

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures Fatalf instead of stopping the test.
type recordingTB struct {
	testing.TB
	fatal string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.fatal = fmt.Sprintf(format, args...)
}

func TestScenario_AdvancesInOrder(t *testing.T) {
	s := NewScenario(t, "ordered")
	for _, next := range []Stage{StageWebhookRegistered, StageActionPerformed, StageRequestReceived, StageVerified} {
		s.Step(next, func() error { return nil })
	}
	assert.Equal(t, StageVerified, s.Stage())
}

func TestScenario_FailureNamesStage(t *testing.T) {
	tb := &recordingTB{}
	s := NewScenario(tb, "member.added")

	s.Step(StageWebhookRegistered, func() error { return nil })
	s.Step(StageActionPerformed, func() error { return errors.New("boom") })

	assert.Equal(t, "member.added: failed reaching ActionPerformed: boom", tb.fatal)
}

func TestScenario_RejectsSkippedStage(t *testing.T) {
	tb := &recordingTB{}
	s := NewScenario(tb, "member.deleted")

	s.Step(StageRequestReceived, func() error { return nil })

	assert.Equal(t, "member.deleted: cannot move from Idle to RequestReceived", tb.fatal)
}
