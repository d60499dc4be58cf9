package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/marketing"
	"github.com/woodora/woodora-backend/internal/marketing/dto"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type marketingUseCase struct {
	repo   marketing.Repository
	sender marketing.Sender
	logger logger.ZapLogger
}

func NewMarketingUseCase(repo marketing.Repository, sender marketing.Sender, logger logger.ZapLogger) marketing.UseCase {
	return &marketingUseCase{repo: repo, sender: sender, logger: logger}
}

var (
	nonDigits    = regexp.MustCompile(`\D`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// NormalizePhone strips formatting and returns the number as 91XXXXXXXXXX.
// Ten-digit Indian mobile numbers get the country code prefixed; anything
// else is rejected.
func NormalizePhone(raw string) (string, bool) {
	digits := nonDigits.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 10 && digits[0] >= '6':
		return "91" + digits, true
	case len(digits) == 12 && strings.HasPrefix(digits, "91") && digits[2] >= '6':
		return digits, true
	}
	return "", false
}

func (uc *marketingUseCase) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &dto.ImportResult{}
	nameCol, phoneCol := 0, 1
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		// a header row names the columns; without one the default
		// name,phone order applies
		if first {
			first = false
			if header := detectColumns(record); header != nil {
				nameCol, phoneCol = header[0], header[1]
				continue
			}
		}
		if phoneCol >= len(record) {
			result.Skipped++
			continue
		}

		phone, ok := NormalizePhone(record[phoneCol])
		if !ok {
			result.Skipped++
			continue
		}

		contact := &model.Contact{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			Phone: phone,
		}
		if nameCol < len(record) {
			if name := strings.TrimSpace(record[nameCol]); name != "" {
				contact.Name = &name
			}
		}

		if err := uc.repo.UpsertContact(ctx, contact); err != nil {
			return nil, err
		}
		result.Imported++
	}
	return result, nil
}

// detectColumns returns [nameIndex, phoneIndex] when the record looks like a
// header row, nil otherwise.
func detectColumns(record []string) []int {
	nameCol, phoneCol := -1, -1
	for i, field := range record {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "name", "customer_name", "full_name":
			nameCol = i
		case "phone", "phone_number", "mobile", "whatsapp":
			phoneCol = i
		}
	}
	if phoneCol == -1 {
		return nil
	}
	if nameCol == -1 {
		nameCol = phoneCol // no name column; the phone index keeps bounds checks simple
	}
	return []int{nameCol, phoneCol}
}

func (uc *marketingUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	contacts, err := uc.repo.AllContacts(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "phone", "created_at"}); err != nil {
		return err
	}
	for _, c := range contacts {
		name := ""
		if c.Name != nil {
			name = *c.Name
		}
		if err := writer.Write([]string{name, c.Phone, c.CreatedAt.Format(time.RFC3339)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (uc *marketingUseCase) ListContacts(ctx context.Context, page, pageSize int) ([]model.Contact, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return uc.repo.FindContacts(ctx, page, pageSize)
}

func (uc *marketingUseCase) DeleteContact(ctx context.Context, id string) error {
	return uc.repo.DeleteContact(ctx, id)
}

func (uc *marketingUseCase) Blast(ctx context.Context, input *dto.BlastInput) (*dto.BlastResult, error) {
	switch input.Kind {
	case "text":
		if input.Body == "" {
			return nil, fmt.Errorf("%w: body is required for text blasts", marketing.ErrInvalidInput)
		}
	case "template":
		if input.TemplateName == "" {
			return nil, fmt.Errorf("%w: template_name is required for template blasts", marketing.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: kind must be text or template", marketing.ErrInvalidInput)
	}

	contacts, err := uc.repo.AllContacts(ctx)
	if err != nil {
		return nil, err
	}

	language := input.Language
	if language == "" {
		language = "en"
	}

	result := &dto.BlastResult{Total: len(contacts)}
	for _, c := range contacts {
		var sendErr error
		if input.Kind == "text" {
			sendErr = uc.sender.SendText(ctx, c.Phone, input.Body)
		} else {
			sendErr = uc.sender.SendTemplate(ctx, c.Phone, input.TemplateName, language, input.BodyParams)
		}
		if sendErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.Phone, sendErr))
			uc.logger.Warn("blast send failed", zap.String("phone", c.Phone), zap.Error(sendErr))
			continue
		}
		result.Sent++
	}
	return result, nil
}

func (uc *marketingUseCase) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email", marketing.ErrInvalidInput)
	}
	sub := &model.Subscription{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:    email,
		IsActive: true,
	}
	return uc.repo.UpsertSubscription(ctx, sub)
}

func (uc *marketingUseCase) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	found, err := uc.repo.DeactivateSubscription(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return marketing.ErrNotFound
	}
	return nil
}

func (uc *marketingUseCase) ListSubscriptions(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.Subscription, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return uc.repo.FindSubscriptions(ctx, activeOnly, page, pageSize)
}
