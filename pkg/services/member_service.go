package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/events"
	"newsletter-admin-go/pkg/models"
	"newsletter-admin-go/pkg/utils"
)

// Publisher receives lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

// MemberModel is the model name used in member event payloads.
const MemberModel = "member"

// MemberService handles member lifecycle operations
type MemberService struct {
	store  db.Store
	events Publisher
}

// NewMemberService creates a new member service
func NewMemberService(store db.Store, publisher Publisher) *MemberService {
	return &MemberService{store: store, events: publisher}
}

// Create adds a member, subscribes it to every active newsletter that
// subscribes on signup, and emits member.added.
func (s *MemberService) Create(ctx context.Context, create models.MemberCreate) (*models.Member, error) {
	email, err := utils.ValidateEmail(create.Email)
	if err != nil {
		return nil, invalid("Invalid member email", err)
	}
	create.Email = email

	if _, err := s.store.GetMemberByEmail(ctx, email); err == nil {
		return nil, invalid("Member already exists", nil)
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	newsletters, err := s.store.ListNewsletters(ctx)
	if err != nil {
		return nil, err
	}
	var newsletterIDs []string
	for _, n := range newsletters {
		if n.Status == models.NewsletterStatusActive && n.SubscribeOnSignup {
			newsletterIDs = append(newsletterIDs, n.ID)
		}
	}

	member, err := s.store.CreateMember(ctx, create, newsletterIDs)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Name:       models.EventMemberAdded,
		Model:      MemberModel,
		Current:    member,
		OccurredAt: time.Now().UTC(),
	})

	return member, nil
}

// Get returns a member with its newsletters
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	return s.store.GetMember(ctx, id)
}

// List returns a page of members and the total count
func (s *MemberService) List(ctx context.Context, limit, offset int) ([]models.Member, int, error) {
	return s.store.ListMembers(ctx, limit, offset)
}

// Delete removes a member and emits member.deleted carrying the member as it
// was, newsletter subscriptions included.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	member, err := s.store.GetMember(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteMember(ctx, id); err != nil {
		return err
	}

	s.events.Publish(ctx, events.Event{
		Name:       models.EventMemberDeleted,
		Model:      MemberModel,
		Previous:   member,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
