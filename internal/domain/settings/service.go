package settings

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var validTemplateTypes = map[string]bool{
	TemplateTypeReminder: true, TemplateTypeBilling: true,
	TemplateTypeDocument: true, TemplateTypeWelcome: true,
}

var validAddressTypes = map[string]bool{
	AddressTypeBusiness: true, AddressTypeClientBills: true,
}

var macroPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

type Service struct {
	templates  TemplateRepository
	telehealth TelehealthRepository
	addresses  AddressRepository
}

func NewService(templates TemplateRepository, telehealth TelehealthRepository, addresses AddressRepository) *Service {
	return &Service{templates: templates, telehealth: telehealth, addresses: addresses}
}

// -- Email Templates --

func (s *Service) CreateTemplate(ctx context.Context, t *EmailTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validTemplateTypes[t.Type] {
		return fmt.Errorf("invalid template type: %s", t.Type)
	}
	return s.templates.Create(ctx, t)
}

func (s *Service) GetTemplate(ctx context.Context, id uuid.UUID) (*EmailTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *Service) GetTemplateByType(ctx context.Context, templateType string) (*EmailTemplate, error) {
	if !validTemplateTypes[templateType] {
		return nil, fmt.Errorf("invalid template type: %s", templateType)
	}
	return s.templates.GetByType(ctx, templateType)
}

func (s *Service) UpdateTemplate(ctx context.Context, t *EmailTemplate) error {
	if !validTemplateTypes[t.Type] {
		return fmt.Errorf("invalid template type: %s", t.Type)
	}
	return s.templates.Update(ctx, t)
}

func (s *Service) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.templates.Delete(ctx, id)
}

func (s *Service) ListTemplates(ctx context.Context) ([]*EmailTemplate, error) {
	return s.templates.List(ctx)
}

// Render substitutes {{macro}} placeholders in the template subject and body.
// In strict mode an unresolved macro is an error; otherwise it is left
// verbatim for the recipient to see.
func Render(t *EmailTemplate, macros map[string]string, strict bool) (subject, body string, err error) {
	subject, err = renderText(t.Subject, macros, strict)
	if err != nil {
		return "", "", err
	}
	body, err = renderText(t.Body, macros, strict)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func renderText(text string, macros map[string]string, strict bool) (string, error) {
	var unresolved []string
	out := macroPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := macroPattern.FindStringSubmatch(match)[1]
		if v, ok := macros[key]; ok {
			return v
		}
		unresolved = append(unresolved, key)
		return match
	})
	if strict && len(unresolved) > 0 {
		return "", fmt.Errorf("unresolved macros: %s", strings.Join(unresolved, ", "))
	}
	return out, nil
}

// -- Telehealth --

func (s *Service) GetTelehealth(ctx context.Context) (*TelehealthSettings, error) {
	return s.telehealth.Get(ctx)
}

func (s *Service) UpdateTelehealth(ctx context.Context, t *TelehealthSettings) error {
	if t.IsEnabled && t.Provider == "" {
		return fmt.Errorf("provider is required when telehealth is enabled")
	}
	return s.telehealth.Upsert(ctx, t)
}

// -- Billing Addresses --

func (s *Service) GetAddress(ctx context.Context, addressType string) (*BillingAddress, error) {
	if !validAddressTypes[addressType] {
		return nil, fmt.Errorf("invalid address type: %s", addressType)
	}
	return s.addresses.GetByType(ctx, addressType)
}

func (s *Service) UpsertAddress(ctx context.Context, a *BillingAddress) error {
	if !validAddressTypes[a.Type] {
		return fmt.Errorf("invalid address type: %s", a.Type)
	}
	if a.Street == "" || a.City == "" || a.State == "" || a.Zip == "" {
		return fmt.Errorf("street, city, state and zip are required")
	}
	return s.addresses.Upsert(ctx, a)
}

func (s *Service) ListAddresses(ctx context.Context) ([]*BillingAddress, error) {
	return s.addresses.List(ctx)
}
