package e2e_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/e2e"
	"newsletter-admin-go/pkg/e2e/matchers"
	"newsletter-admin-go/pkg/models"
)

func newsletterSnapshot(deleteMember bool) matchers.Object {
	snapshot := matchers.Object{
		"id":                  matchers.AnyObjectID,
		"uuid":                matchers.AnyUUID,
		"name":                e2e.DefaultNewsletter,
		"slug":                "default-newsletter",
		"status":              "active",
		"subscribe_on_signup": true,
		"sort_order":          0,
		"created_at":          matchers.AnyISODateTime,
		"updated_at":          matchers.AnyISODateTime,
	}
	if deleteMember {
		snapshot["_pivot_member_id"] = matchers.AnyObjectID
		snapshot["_pivot_newsletter_id"] = matchers.AnyObjectID
	}
	return snapshot
}

func memberSnapshot(deleteMember bool) matchers.Object {
	return matchers.Object{
		"id":          matchers.AnyObjectID,
		"uuid":        matchers.AnyUUID,
		"email":       "testemail@example.com",
		"name":        "Test Member",
		"note":        "test note",
		"status":      models.MemberStatusFree,
		"created_at":  matchers.AnyISODateTime,
		"updated_at":  matchers.AnyISODateTime,
		"newsletters": matchers.Array{newsletterSnapshot(deleteMember)},
	}
}

var webhookHeaders = matchers.Object{
	"content-type":    "application/json",
	"content-version": matchers.AnyContentVersion,
	"content-length":  matchers.AnyNumber,
	"user-agent":      matchers.AnyAgent,
}

var testMember = map[string]any{
	"members": []map[string]any{{
		"name":  "Test Member",
		"email": "testemail@example.com",
		"note":  "test note",
	}},
}

type harness struct {
	agent    *e2e.AdminAPIAgent
	fixtures *e2e.FixtureManager
	mocks    *e2e.MockManager
}

func setup(t *testing.T) *harness {
	t.Helper()
	agent := e2e.NewAgentProvider().GetAdminAPIAgent(t)
	fixtures := e2e.NewFixtureManager(t, agent).Init("integrations")
	agent.LoginAsOwner()
	return &harness{agent: agent, fixtures: fixtures, mocks: e2e.NewMockManager(t, agent)}
}

func createdMemberID(t *testing.T, resp *e2e.Response) string {
	t.Helper()
	var body struct {
		Members []models.Member `json:"members"`
	}
	require.NoError(t, resp.Decode(&body))
	require.Len(t, body.Members, 1)
	return body.Members[0].ID
}

// exactlyOne waits for the dispatcher to go idle and checks a single
// delivery was made.
func exactlyOne(h *harness, receiver *e2e.WebhookMockReceiver) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.agent.Server().Dispatcher.Flush(ctx); err != nil {
		return err
	}
	if n := len(receiver.Requests()); n != 1 {
		return errors.Errorf("expected exactly one delivery, got %d", n)
	}
	return nil
}

func TestMemberAddedWebhook(t *testing.T) {
	h := setup(t)
	receiver := h.mocks.MockWebhookRequests()
	defer h.mocks.Restore()

	const webhookURL = "https://test-webhook-receiver.com/member-added/"
	scenario := e2e.NewScenario(t, "member.added")

	scenario.Step(e2e.StageWebhookRegistered, func() error {
		receiver.Mock(webhookURL)
		h.fixtures.InsertWebhook(e2e.WebhookFixture{Event: models.EventMemberAdded, URL: webhookURL})
		return nil
	})

	var memberID string
	scenario.Step(e2e.StageActionPerformed, func() error {
		resp := h.agent.Post("members/").Body(testMember).ExpectStatus(http.StatusCreated)
		memberID = createdMemberID(t, resp)
		return nil
	})

	scenario.Step(e2e.StageRequestReceived, func() error {
		req, err := receiver.ReceivedRequest(context.Background())
		if err != nil {
			return err
		}
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, webhookURL, req.URL)
		return exactlyOne(h, receiver)
	})

	scenario.Step(e2e.StageVerified, func() error {
		if err := receiver.VerifyHeaders(webhookHeaders); err != nil {
			return err
		}
		current := memberSnapshot(false)
		current["id"] = memberID
		return receiver.VerifyBody(matchers.Object{
			"member": matchers.Object{"current": current},
		})
	})

	assert.Equal(t, e2e.StageVerified, scenario.Stage())
	receiver.MatchHeaderSnapshot(webhookHeaders).
		MatchBodySnapshot(matchers.Object{
			"member": matchers.Object{"current": memberSnapshot(false)},
		})
}

func TestMemberDeletedWebhook(t *testing.T) {
	h := setup(t)
	receiver := h.mocks.MockWebhookRequests()
	defer h.mocks.Restore()

	const webhookURL = "https://test-webhook-receiver.com/member-deleted/"
	scenario := e2e.NewScenario(t, "member.deleted")

	scenario.Step(e2e.StageWebhookRegistered, func() error {
		receiver.Mock(webhookURL)
		h.fixtures.InsertWebhook(e2e.WebhookFixture{Event: models.EventMemberDeleted, URL: webhookURL})
		return nil
	})

	scenario.Step(e2e.StageActionPerformed, func() error {
		resp := h.agent.Post("members/").Body(testMember).ExpectStatus(http.StatusCreated)
		memberID := createdMemberID(t, resp)
		h.agent.Delete("members/" + memberID + "/").ExpectStatus(http.StatusNoContent)
		return nil
	})

	scenario.Step(e2e.StageRequestReceived, func() error {
		if _, err := receiver.ReceivedRequest(context.Background()); err != nil {
			return err
		}
		return exactlyOne(h, receiver)
	})

	scenario.Step(e2e.StageVerified, func() error {
		if err := receiver.VerifyHeaders(webhookHeaders); err != nil {
			return err
		}
		previous := memberSnapshot(true)
		newsletter := previous["newsletters"].(matchers.Array)[0].(matchers.Object)
		newsletter["_pivot_newsletter_id"] = h.fixtures.Newsletter.ID
		return receiver.VerifyBody(matchers.Object{
			"member": matchers.Object{
				"current":  matchers.Object{},
				"previous": previous,
			},
		})
	})
}

func TestUnmockedWebhookTargetIsRefused(t *testing.T) {
	h := setup(t)
	receiver := h.mocks.MockWebhookRequests()

	h.fixtures.InsertWebhook(e2e.WebhookFixture{
		Event: models.EventMemberAdded,
		URL:   "https://not-mocked.example.com/hook",
	})
	h.agent.Post("members").Body(testMember).ExpectStatus(http.StatusCreated)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.agent.Server().Dispatcher.Flush(ctx))

	assert.Empty(t, receiver.Requests())
	assert.NotEmpty(t, receiver.Unmatched())

	// Restore would fail this test for the unmocked hit, so only reset the
	// transport here.
	h.agent.Server().Dispatcher.SetTransport(nil)
}

func TestAdminAPIAgentRequiresLogin(t *testing.T) {
	agent := e2e.NewAgentProvider().GetAdminAPIAgent(t)
	e2e.NewFixtureManager(t, agent).Init("integrations")

	agent.Get("members").ExpectStatus(http.StatusUnauthorized)

	agent.LoginAsOwner()
	resp := agent.Get("users/me/").ExpectStatus(http.StatusOK)
	var body map[string]any
	require.NoError(t, resp.Decode(&body))
	assert.Contains(t, string(resp.Body), e2e.OwnerEmail)
}

func TestFixtureLinks(t *testing.T) {
	h := setup(t)
	resp := h.agent.Get("posts/" + h.fixtures.Post.ID + "/links").ExpectStatus(http.StatusOK)
	assert.Contains(t, string(resp.Body), "https://example.com/welcome")
	assert.Contains(t, string(resp.Body), "https://example.com/pricing")
}
