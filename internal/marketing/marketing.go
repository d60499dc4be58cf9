package marketing

import (
	"context"
	"errors"
	"io"

	"github.com/woodora/woodora-backend/internal/marketing/dto"
	"github.com/woodora/woodora-backend/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Repository interface {
	// UpsertContact inserts the contact or refreshes the name of an
	// existing one; phone is the natural key.
	UpsertContact(ctx context.Context, contact *model.Contact) error
	FindContacts(ctx context.Context, page, pageSize int) ([]model.Contact, int, error)
	AllContacts(ctx context.Context) ([]model.Contact, error)
	DeleteContact(ctx context.Context, id string) error

	UpsertSubscription(ctx context.Context, sub *model.Subscription) error
	DeactivateSubscription(ctx context.Context, email string) (bool, error)
	FindSubscriptions(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.Subscription, int, error)
}

// Sender is the outbound WhatsApp surface the blast path needs.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
	SendTemplate(ctx context.Context, to, name, langCode string, bodyParams []string) error
}

type UseCase interface {
	// ImportCSV reads contact rows, normalizes phone numbers and upserts
	// them; malformed rows are counted, not fatal.
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
	// ExportCSV writes all contacts as name,phone,created_at rows.
	ExportCSV(ctx context.Context, w io.Writer) error
	ListContacts(ctx context.Context, page, pageSize int) ([]model.Contact, int, error)
	DeleteContact(ctx context.Context, id string) error

	// Blast sends a text or template message to every contact, one by
	// one, and reports per-recipient outcomes.
	Blast(ctx context.Context, input *dto.BlastInput) (*dto.BlastResult, error)

	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
	ListSubscriptions(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.Subscription, int, error)
}
