package inquiries

import (
	"context"
	"errors"
	"testing"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/events"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/mailer"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listings map[string]*business.Business

func (l listings) Get(ctx context.Context, id string) (*business.Business, error) {
	if b, ok := l[id]; ok {
		return b, nil
	}
	return nil, models.NotFound("business")
}

type failingNotifier struct{}

func (failingNotifier) NotifyInquiry(ctx context.Context, to string, d mailer.InquiryData) error {
	return errors.New("smtp down")
}

var (
	owner    = models.Actor{ID: "vendor-1", Role: models.RoleVendor}
	stranger = models.Actor{ID: "vendor-2", Role: models.RoleVendor}
	admin    = models.Actor{ID: "admin", Role: models.RoleAdmin}
)

func fixtures() listings {
	return listings{
		"b1": {ID: "b1", Name: "Sharma Sweets", VendorID: owner.ID, Contact: business.Contact{Phone: "1", Email: "owner@shop.in"}},
		"b2": {ID: "b2", Name: "Quiet Shop", VendorID: owner.ID},
	}
}

func TestCreateNotifiesOwner(t *testing.T) {
	ls := &mailer.LogSender{}
	m, err := mailer.New(ls, config.SiteConfig{BaseURL: "https://gurujee.test", Name: "Business Gurujee"})
	require.NoError(t, err)
	rec := &events.Recorder{}
	s := NewService(NewMemoryRepository(), fixtures(), m, rec)
	before := testutil.ToFloat64(metrics.InquiriesCreated)

	i, err := s.Create(context.Background(), Input{
		BusinessID: "b1", Name: "Asha", Phone: "9876543210", Message: "Open on Sunday?",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, i.VendorID)
	assert.Equal(t, StatusNew, i.Status)

	require.Len(t, ls.Sent(), 1)
	assert.Equal(t, "owner@shop.in", ls.Sent()[0].To)
	assert.Equal(t, []string{events.InquiryCreated}, rec.Topics())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.InquiriesCreated))

	// no contact email, no mail
	_, err = s.Create(context.Background(), Input{BusinessID: "b2", Name: "A", Phone: "1", Message: "hi"})
	require.NoError(t, err)
	assert.Len(t, ls.Sent(), 1)
}

func TestCreateSurvivesMailFailure(t *testing.T) {
	s := NewService(NewMemoryRepository(), fixtures(), failingNotifier{}, nil)
	i, err := s.Create(context.Background(), Input{BusinessID: "b1", Name: "A", Phone: "1", Message: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, i.ID)
}

func TestCreateValidation(t *testing.T) {
	s := NewService(NewMemoryRepository(), fixtures(), nil, nil)
	ctx := context.Background()
	for _, in := range []Input{
		{Name: "A", Phone: "1", Message: "m"},
		{BusinessID: "b1", Phone: "1", Message: "m"},
		{BusinessID: "b1", Name: "A", Message: "m"},
		{BusinessID: "b1", Name: "A", Phone: "1"},
		{BusinessID: "b1", Name: "A", Phone: "1", Message: "m", Email: "not-an-email"},
	} {
		_, err := s.Create(ctx, in)
		require.ErrorIs(t, err, models.ErrValidation)
	}
	_, err := s.Create(ctx, Input{BusinessID: "nope", Name: "A", Phone: "1", Message: "m"})
	require.ErrorIs(t, err, models.ErrNotFound)

	n, _ := s.Count(ctx, Filter{})
	assert.Zero(t, n)
}

func TestOwnershipAndStatus(t *testing.T) {
	s := NewService(NewMemoryRepository(), fixtures(), nil, nil)
	ctx := context.Background()
	first, _ := s.Create(ctx, Input{BusinessID: "b1", Name: "A", Phone: "1", Message: "one"})
	_, _ = s.Create(ctx, Input{BusinessID: "b2", Name: "B", Phone: "2", Message: "two"})

	mine, err := s.ListForActor(ctx, owner, Filter{}, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.Total)
	assert.Equal(t, "two", mine.Items[0].Message, "newest first")

	theirs, err := s.ListForActor(ctx, stranger, Filter{}, models.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, theirs.Total)

	_, err = s.UpdateStatus(ctx, stranger, first.ID, StatusRead)
	require.ErrorIs(t, err, models.ErrForbidden)
	_, err = s.UpdateStatus(ctx, owner, first.ID, "archived")
	require.ErrorIs(t, err, models.ErrValidation)

	up, err := s.UpdateStatus(ctx, owner, first.ID, StatusResponded)
	require.NoError(t, err)
	assert.Equal(t, StatusResponded, up.Status)

	byStatus, _ := s.ListForActor(ctx, admin, Filter{Status: StatusNew}, models.PageRequest{})
	assert.Equal(t, int64(1), byStatus.Total)
	byBusiness, _ := s.ListForActor(ctx, owner, Filter{BusinessID: "b1"}, models.PageRequest{})
	assert.Equal(t, int64(1), byBusiness.Total)

	require.ErrorIs(t, s.Delete(ctx, stranger, first.ID), models.ErrForbidden)
	require.NoError(t, s.Delete(ctx, admin, first.ID))
	after, _ := s.ListForActor(ctx, owner, Filter{}, models.PageRequest{})
	assert.Equal(t, int64(1), after.Total)
}
