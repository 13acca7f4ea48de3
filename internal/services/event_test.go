package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketbooth/internal/models"
	"ticketbooth/internal/repositories"
)

// fakeEventRepo is a map-backed EventRepository for service tests
type fakeEventRepo struct {
	events map[int]*models.Event
	nextID int
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	f := &fakeEventRepo{events: make(map[int]*models.Event)}
	for _, e := range events {
		f.events[e.ID] = e
		if e.ID > f.nextID {
			f.nextID = e.ID
		}
	}
	return f
}

func (f *fakeEventRepo) Create(req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f.nextID++
	event := &models.Event{
		ID:          f.nextID,
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Venue:       req.Venue,
		Artist:      req.Artist,
		Date:        req.Date,
		Capacity:    req.Capacity,
		PriceCents:  req.PriceCents,
		CreatedAt:   time.Now(),
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) GetByID(id int) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) Search(filters repositories.EventSearchFilters) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range f.events {
		if filters.Category != "" && e.Category != filters.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Categories() ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range f.events {
		if e.Category == "" {
			continue
		}
		if _, ok := seen[e.Category]; !ok {
			seen[e.Category] = struct{}{}
			out = append(out, e.Category)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) SetCancelled(id int) error {
	event, ok := f.events[id]
	if !ok {
		return models.ErrEventNotFound
	}
	event.Cancelled = true
	return nil
}

func (f *fakeEventRepo) Delete(id int) error {
	if _, ok := f.events[id]; !ok {
		return models.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

// fakeCommentRepo is a slice-backed CommentRepository for service tests
type fakeCommentRepo struct {
	comments []*models.Comment
	nextID   int
}

func (f *fakeCommentRepo) Create(req *models.CommentCreateRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f.nextID++
	comment := &models.Comment{
		ID:        f.nextID,
		UserID:    req.UserID,
		EventID:   req.EventID,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	f.comments = append(f.comments, comment)
	return comment, nil
}

func (f *fakeCommentRepo) GetByEvent(eventID int) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range f.comments {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestEventServiceGetEventDerivesStatus(t *testing.T) {
	repo := newFakeEventRepo(
		&models.Event{ID: 1, Title: "Open show", Date: time.Now().AddDate(0, 0, 3), Capacity: 10},
		&models.Event{ID: 2, Title: "Old show", Date: time.Now().AddDate(0, 0, -3), Capacity: 10},
		&models.Event{ID: 3, Title: "Gone show", Date: time.Now().AddDate(0, 0, 3), Capacity: 10, TicketsSold: 10},
	)
	svc := NewEventService(repo, &fakeCommentRepo{})

	open, err := svc.GetEvent(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, open.Status)

	old, err := svc.GetEvent(2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, old.Status)

	gone, err := svc.GetEvent(3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSoldOut, gone.Status)

	_, err = svc.GetEvent(99)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestEventServiceBrowseFiltersByCategory(t *testing.T) {
	repo := newFakeEventRepo(
		&models.Event{ID: 1, Title: "Rap night", Category: "Rap", Date: time.Now().AddDate(0, 0, 3), Capacity: 10},
		&models.Event{ID: 2, Title: "Jazz night", Category: "Jazz", Date: time.Now().AddDate(0, 0, 3), Capacity: 10},
	)
	svc := NewEventService(repo, &fakeCommentRepo{})

	rap, err := svc.BrowseEvents("Rap", "")
	require.NoError(t, err)
	require.Len(t, rap, 1)
	assert.Equal(t, "Rap night", rap[0].Title)
	assert.Equal(t, models.StatusOpen, rap[0].Status)

	all, err := svc.BrowseEvents("", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEventServiceCancelRequiresOwner(t *testing.T) {
	repo := newFakeEventRepo(&models.Event{ID: 1, OwnerID: 7, Title: "Show", Date: time.Now().AddDate(0, 0, 3), Capacity: 10})
	svc := NewEventService(repo, &fakeCommentRepo{})

	err := svc.CancelEvent(1, 8)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.False(t, repo.events[1].Cancelled)

	err = svc.CancelEvent(1, 7)
	require.NoError(t, err)
	assert.True(t, repo.events[1].Cancelled)
}

func TestEventServiceDeleteRequiresOwner(t *testing.T) {
	repo := newFakeEventRepo(&models.Event{ID: 1, OwnerID: 7, Title: "Show", Date: time.Now().AddDate(0, 0, 3), Capacity: 10})
	svc := NewEventService(repo, &fakeCommentRepo{})

	assert.ErrorIs(t, svc.DeleteEvent(1, 8), models.ErrUnauthorized)
	require.NoError(t, svc.DeleteEvent(1, 7))

	_, err := svc.GetEvent(1)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestEventServiceComments(t *testing.T) {
	repo := newFakeEventRepo(&models.Event{ID: 1, OwnerID: 7, Title: "Show", Date: time.Now().AddDate(0, 0, 3), Capacity: 10})
	svc := NewEventService(repo, &fakeCommentRepo{})

	_, err := svc.AddComment(&models.CommentCreateRequest{UserID: 2, EventID: 99, Body: "hello"})
	assert.ErrorIs(t, err, models.ErrEventNotFound)

	comment, err := svc.AddComment(&models.CommentCreateRequest{UserID: 2, EventID: 1, Body: "can't wait"})
	require.NoError(t, err)
	assert.Equal(t, "can't wait", comment.Body)

	comments, err := svc.GetComments(1)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
