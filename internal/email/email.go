package email

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/kafka"
)

// Sender renders member notifications. Delivery is a line on out until a
// mail provider is configured.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func NewSenderTo(out io.Writer) *Sender {
	return &Sender{out: out}
}

// Send notifies the member named in the event. Events without a member are
// ignored.
func (s *Sender) Send(ctx context.Context, event kafka.LedgerEvent) error {
	if event.UserID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, ok := subjectFor(event.Type)
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(s.out, "send email to user %s: %s (session %s, booking %s, %d seats left)\n",
		event.UserID, subject, event.SessionID, event.BookingID, event.Available)
	return err
}

// Notify is Send for consumer loops: a failed delivery is logged and the
// event skipped, so one bad message does not stop consumption. Only a done
// context is returned.
func (s *Sender) Notify(ctx context.Context, event kafka.LedgerEvent) error {
	if err := s.Send(ctx, event); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Printf("notify user %s about %s %s failed, skipping: %v", event.UserID, event.Type, event.EventID, err)
	}
	return nil
}

func subjectFor(eventType string) (string, bool) {
	switch domain.EventType(eventType) {
	case domain.EventBookingCreated:
		return "booking confirmed", true
	case domain.EventBookingCancelled:
		return "booking cancelled", true
	default:
		return "", false
	}
}
