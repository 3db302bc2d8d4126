package booking

import (
	"context"
	"errors"
	"time"

	"turfbook/internal/email"
	"turfbook/internal/events"
	"turfbook/internal/logger"
	"turfbook/internal/metrics"
	"turfbook/internal/turf"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Payment sources recorded on booking.paid events.
const (
	SourceAdmin = "admin"
	SourceEvent = "event"
)

var tracer = otel.Tracer("turfbook/booking")

// Mailer queues customer notifications.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to string, n email.BookingNotice) error
	SendPaymentReceipt(ctx context.Context, to string, n email.BookingNotice) error
}

type Service interface {
	GetBookingPage(ctx context.Context, slotID int) (*BookingPage, error)
	BookSlot(ctx context.Context, userID, slotID int) (*Booking, error)
	UserBookings(ctx context.Context, userID int) ([]Details, error)
	AllBookings(ctx context.Context) ([]Details, error)
	UpcomingBookings(ctx context.Context) ([]Details, error)
	MarkPaid(ctx context.Context, bookingID int, source string) (*Booking, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo      Repository
	turfs     turf.Service
	notifier  turf.SlotNotifier
	mailer    Mailer
	publisher events.Publisher
	now       func() time.Time
}

func NewService(
	repo Repository,
	turfs turf.Service,
	notifier turf.SlotNotifier,
	mailer Mailer,
	publisher events.Publisher,
) Service {
	if notifier == nil {
		notifier = turf.NopNotifier{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		repo:      repo,
		turfs:     turfs,
		notifier:  notifier,
		mailer:    mailer,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) GetBookingPage(ctx context.Context, slotID int) (*BookingPage, error) {
	slot, err := s.turfs.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	t, err := s.turfs.GetTurf(ctx, slot.TurfID)
	if err != nil {
		return nil, err
	}

	return &BookingPage{
		Slot:          *slot,
		Turf:          *t,
		DepositAmount: DepositAmount(t.PricePerSlot),
	}, nil
}

// BookSlot reserves a slot for userID. Side effects after the commit are
// best effort and never fail the booking.
func (s *service) BookSlot(ctx context.Context, userID, slotID int) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.BookSlot", trace.WithAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("slot.id", slotID),
	))
	defer span.End()

	b, slot, err := s.repo.BookSlot(ctx, userID, slotID, s.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("booking.id", b.ID), attribute.Int("turf.id", slot.TurfID))

	s.notifier.SlotsChanged(ctx, slot.TurfID)

	details, err := s.repo.GetDetails(ctx, b.ID)
	if err != nil {
		logger.WithError(err).Warn("load booking details failed", "booking_id", b.ID)
		return b, nil
	}

	if s.mailer != nil {
		if err := s.mailer.SendBookingConfirmation(ctx, details.User.Email, notice(details)); err != nil {
			logger.WithError(err).Warn("queue confirmation email failed", "booking_id", b.ID)
		}
	}

	ev := events.BookingCreated{
		EventID:    events.NewEventID(),
		BookingID:  b.ID,
		UserID:     userID,
		SlotID:     slotID,
		TurfID:     slot.TurfID,
		Start:      slot.StartTime,
		Deposit:    details.DepositAmount,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishJSON(ctx, events.RKBookingCreated, ev); err != nil {
		logger.WithError(err).Warn("publish booking.created failed", "booking_id", b.ID)
	}

	logger.Info("booking confirmed", "booking_id", b.ID, "slot_id", slotID, "user_id", userID)
	return b, nil
}

func (s *service) UserBookings(ctx context.Context, userID int) ([]Details, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].User = nil
	}
	return list, nil
}

func (s *service) AllBookings(ctx context.Context) ([]Details, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) UpcomingBookings(ctx context.Context) ([]Details, error) {
	return s.repo.ListUpcoming(ctx, s.now())
}

// MarkPaid is idempotent: a booking that is already fully paid is returned
// unchanged and no notifications are repeated.
func (s *service) MarkPaid(ctx context.Context, bookingID int, source string) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.MarkPaid", trace.WithAttributes(
		attribute.Int("booking.id", bookingID),
		attribute.String("payment.source", source),
	))
	defer span.End()

	b, changed, err := s.repo.MarkFullPaid(ctx, bookingID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !changed {
		return b, nil
	}
	metrics.RecordPaymentMarked(source)

	details, err := s.repo.GetDetails(ctx, b.ID)
	if err != nil {
		logger.WithError(err).Warn("load booking details failed", "booking_id", b.ID)
		return b, nil
	}

	if s.mailer != nil {
		if err := s.mailer.SendPaymentReceipt(ctx, details.User.Email, notice(details)); err != nil {
			logger.WithError(err).Warn("queue receipt email failed", "booking_id", b.ID)
		}
	}

	ev := events.BookingPaid{
		EventID:    events.NewEventID(),
		BookingID:  b.ID,
		UserID:     b.UserID,
		Amount:     details.Turf.PricePerSlot,
		Source:     source,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishJSON(ctx, events.RKBookingPaid, ev); err != nil {
		logger.WithError(err).Warn("publish booking.paid failed", "booking_id", b.ID)
	}

	return b, nil
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	return s.repo.Stats(ctx, s.now())
}

func notice(d *Details) email.BookingNotice {
	return email.BookingNotice{
		BookingID: d.Booking.ID,
		TurfName:  d.Turf.Name,
		Location:  d.Turf.Location,
		Start:     d.Slot.StartTime,
		Price:     d.Turf.PricePerSlot,
		Deposit:   d.DepositAmount,
	}
}

// Message is the user-facing text for a booking failure.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotFound):
		return "Slot not found"
	case errors.Is(err, ErrSlotAlreadyBooked):
		return "Already booked"
	case errors.Is(err, ErrSlotInPast):
		return "Slot has already started"
	case errors.Is(err, ErrBookingNotFound):
		return "Booking not found"
	default:
		return "Booking failed"
	}
}

// Outcome is the metrics label for a booking attempt result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "confirmed"
	case errors.Is(err, ErrSlotNotFound):
		return "not_found"
	case errors.Is(err, ErrSlotAlreadyBooked):
		return "already_booked"
	case errors.Is(err, ErrSlotInPast):
		return "in_past"
	default:
		return "error"
	}
}
