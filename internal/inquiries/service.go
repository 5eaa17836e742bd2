package inquiries

import (
	"context"
	"net/mail"
	"strings"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/events"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/mailer"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/metrics"
)

type Businesses interface {
	Get(ctx context.Context, id string) (*business.Business, error)
}

// Notifier mails the business owner about a new inquiry.
type Notifier interface {
	NotifyInquiry(ctx context.Context, to string, d mailer.InquiryData) error
}

type Service struct {
	repo       Repository
	businesses Businesses
	notifier   Notifier
	events     events.Publisher
}

func NewService(repo Repository, businesses Businesses, notifier Notifier, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{repo: repo, businesses: businesses, notifier: notifier, events: pub}
}

const maxMessage = 5000

// Create stores the inquiry, then notifies the owner. Mail and event
// failures are logged and do not fail the request.
func (s *Service) Create(ctx context.Context, in Input) (*Inquiry, error) {
	i := &Inquiry{
		BusinessID: strings.TrimSpace(in.BusinessID),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      strings.TrimSpace(in.Phone),
		Message:    strings.TrimSpace(in.Message),
		Status:     StatusNew,
	}
	switch {
	case i.BusinessID == "":
		return nil, models.Invalid("businessId is required")
	case i.Name == "":
		return nil, models.Invalid("name is required")
	case i.Phone == "":
		return nil, models.Invalid("phone is required")
	case i.Message == "":
		return nil, models.Invalid("message is required")
	case len(i.Message) > maxMessage:
		return nil, models.Invalid("message is longer than %d characters", maxMessage)
	}
	if i.Email != "" {
		if _, err := mail.ParseAddress(i.Email); err != nil {
			return nil, models.Invalid("email is not valid")
		}
	}
	b, err := s.businesses.Get(ctx, i.BusinessID)
	if err != nil {
		return nil, err
	}
	i.VendorID = b.VendorID
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	metrics.InquiriesCreated.Inc()
	s.notify(ctx, b, i)
	events.Emit(ctx, s.events, events.InquiryCreated, map[string]string{
		"inquiryId":  i.ID,
		"businessId": i.BusinessID,
		"vendorId":   i.VendorID,
	})
	return i, nil
}

func (s *Service) notify(ctx context.Context, b *business.Business, i *Inquiry) {
	to := strings.TrimSpace(b.Contact.Email)
	if s.notifier == nil || to == "" {
		return
	}
	err := s.notifier.NotifyInquiry(ctx, to, mailer.InquiryData{
		BusinessName: b.Name,
		Name:         i.Name,
		Email:        i.Email,
		Phone:        i.Phone,
		Message:      i.Message,
	})
	if err != nil {
		logger.Warnf("inquiry %s: notify %s: %v", i.ID, to, err)
	}
}

// ListForActor scopes vendors to inquiries on their own listings.
func (s *Service) ListForActor(ctx context.Context, actor models.Actor, f Filter, page models.PageRequest) (models.Page[Inquiry], error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return models.Page[Inquiry]{}, models.Invalid("unknown status %q", f.Status)
	}
	if !actor.IsAdmin() {
		if actor.ID == "" {
			return models.Page[Inquiry]{}, models.ErrUnauthorized
		}
		f.VendorID = actor.ID
	}
	return s.repo.List(ctx, f, page)
}

func (s *Service) owned(ctx context.Context, actor models.Actor, id string) (*Inquiry, error) {
	i, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(i.VendorID) {
		return nil, models.ErrForbidden
	}
	return i, nil
}

func (s *Service) UpdateStatus(ctx context.Context, actor models.Actor, id, status string) (*Inquiry, error) {
	if !ValidStatus(status) {
		return nil, models.Invalid("status must be one of new, read, responded, closed")
	}
	i, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	i.Status = status
	return i, nil
}

func (s *Service) Delete(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context, f Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}
