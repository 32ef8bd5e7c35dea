package webhooks

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/events"
	"newsletter-admin-go/pkg/models"
)

// TimeFormat is the timestamp layout used in webhook payloads.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ErrUnsupportedModel is returned for events whose snapshots have no wire form.
var ErrUnsupportedModel = errors.New("unsupported webhook model")

// MemberSnapshot is the wire form of a member.
type MemberSnapshot struct {
	ID          string               `json:"id"`
	UUID        string               `json:"uuid"`
	Email       string               `json:"email"`
	Name        string               `json:"name"`
	Note        string               `json:"note"`
	Status      string               `json:"status"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
	Newsletters []NewsletterSnapshot `json:"newsletters"`
}

// NewsletterSnapshot is the wire form of a newsletter. The pivot fields are
// only present on snapshots of deleted members.
type NewsletterSnapshot struct {
	ID                string `json:"id"`
	UUID              string `json:"uuid"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Status            string `json:"status"`
	SubscribeOnSignup bool   `json:"subscribe_on_signup"`
	SortOrder         int    `json:"sort_order"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`

	PivotMemberID     string `json:"_pivot_member_id,omitempty"`
	PivotNewsletterID string `json:"_pivot_newsletter_id,omitempty"`
}

type modelPayload struct {
	Current  any `json:"current"`
	Previous any `json:"previous,omitempty"`
}

// Serialize encodes event as a webhook body: {"<model>": {"current", "previous"}}.
// A missing current snapshot is sent as {} and a missing previous one is omitted.
func Serialize(event events.Event) ([]byte, error) {
	current, err := snapshot(event.Current, false)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = struct{}{}
	}

	previous, err := snapshot(event.Previous, true)
	if err != nil {
		return nil, err
	}

	body, err := sonic.ConfigStd.Marshal(map[string]modelPayload{
		event.Model: {Current: current, Previous: previous},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode webhook payload")
	}
	return body, nil
}

func snapshot(v any, withPivot bool) (any, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case *models.Member:
		if m == nil {
			return nil, nil
		}
		return NewMemberSnapshot(*m, withPivot), nil
	case models.Member:
		return NewMemberSnapshot(m, withPivot), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedModel, "%T", v)
	}
}

// NewMemberSnapshot converts a member to its wire form.
func NewMemberSnapshot(m models.Member, withPivot bool) MemberSnapshot {
	s := MemberSnapshot{
		ID:          m.ID,
		UUID:        m.UUID.String(),
		Email:       m.Email,
		Name:        m.Name,
		Note:        m.Note,
		Status:      m.Status,
		CreatedAt:   formatTime(m.CreatedAt),
		UpdatedAt:   formatTime(m.UpdatedAt),
		Newsletters: make([]NewsletterSnapshot, 0, len(m.Newsletters)),
	}

	for _, n := range m.Newsletters {
		ns := NewsletterSnapshot{
			ID:                n.ID,
			UUID:              n.UUID.String(),
			Name:              n.Name,
			Slug:              n.Slug,
			Status:            n.Status,
			SubscribeOnSignup: n.SubscribeOnSignup,
			SortOrder:         n.SortOrder,
			CreatedAt:         formatTime(n.CreatedAt),
			UpdatedAt:         formatTime(n.UpdatedAt),
		}
		if withPivot && n.Pivot != nil {
			ns.PivotMemberID = n.Pivot.MemberID
			ns.PivotNewsletterID = n.Pivot.NewsletterID
		}
		s.Newsletters = append(s.Newsletters, ns)
	}

	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
