package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
	"gorm.io/gorm"
)

const (
	// notSpecified replaces empty quote/payment placeholders.
	notSpecified = "not specified"

	defaultPlatformName = "Muamalat Portal"
	defaultTemplate     = "Transaction {number} update: {status}"

	defaultMessageLogLimit = 50
)

// MessageService renders WhatsApp message descriptors from configurable
// templates. Delivery is external; we only produce the text, the normalized
// phone, and the wa.me URL, and log every render.
type MessageService struct {
	db                 *gorm.DB
	settingsService    *SettingsService
	shareLinkService   *ShareLinkService
	transactionService *TransactionService
	baseURL            string
}

func NewMessageService(
	db *gorm.DB,
	settingsService *SettingsService,
	shareLinkService *ShareLinkService,
	transactionService *TransactionService,
) *MessageService {
	baseURL := "http://localhost:8080"
	if infrastructures.Config != nil && infrastructures.Config.APP_BASE_URL != "" {
		baseURL = infrastructures.Config.APP_BASE_URL
	}

	return &MessageService{
		db:                 db,
		settingsService:    settingsService,
		shareLinkService:   shareLinkService,
		transactionService: transactionService,
		baseURL:            baseURL,
	}
}

// RenderTemplate substitutes the closed placeholder set into a template.
// Every occurrence is replaced, not just the first.
func RenderTemplate(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func orNotSpecified(value string) string {
	if value == "" {
		return notSpecified
	}
	return value
}

// selectTemplate picks the configured template for the requested type,
// falling back to the status template, then to a built-in default.
func selectTemplate(settings map[string]string, templateType models.TemplateType) string {
	if !templateType.Valid() {
		templateType = models.TemplateTypeStatus
	}
	if template, ok := settings["whatsapp_template_"+string(templateType)]; ok && template != "" {
		return template
	}
	if template, ok := settings["whatsapp_template_status"]; ok && template != "" {
		return template
	}
	return defaultTemplate
}

func (s *MessageService) render(txn *models.Transaction, settings map[string]string, template string) (*models.RenderedMessage, error) {
	link, err := s.shareLinkService.Issue(txn.ID.String())
	if err != nil {
		return nil, err
	}
	trackURL := fmt.Sprintf("%s/track/%s", s.baseURL, link.Code)

	platform := settings["platform_name"]
	if platform == "" {
		platform = defaultPlatformName
	}

	message := RenderTemplate(template, map[string]string{
		"client":   txn.Client,
		"number":   txn.Number,
		"status":   string(txn.Status),
		"quote":    orNotSpecified(txn.Quote),
		"payment":  orNotSpecified(txn.Payment),
		"link":     trackURL,
		"platform": platform,
	})

	phone := pkg.NormalizePhone(txn.Phone)

	return &models.RenderedMessage{
		TxnNumber: txn.Number,
		Client:    txn.Client,
		Phone:     phone,
		Message:   message,
		WaURL:     fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message)),
	}, nil
}

func (s *MessageService) log(txnID string, phone, message string, messageType models.MessageType, sentBy string) error {
	entry := &models.MessageLogEntry{
		TxnID:   &txnID,
		Phone:   phone,
		Message: message,
		Type:    messageType,
		SentBy:  sentBy,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to log message")
	}
	return nil
}

// Render produces one outbound message for a transaction and logs it.
func (s *MessageService) Render(txnID string, templateType models.TemplateType, sentBy string) (*models.RenderedMessage, error) {
	txn, err := s.transactionService.GetByID(txnID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetAll()
	if err != nil {
		return nil, err
	}

	rendered, err := s.render(txn, settings, selectTemplate(settings, templateType))
	if err != nil {
		return nil, err
	}

	if err := s.log(txnID, txn.Phone, rendered.Message, models.MessageTypeWhatsApp, sentBy); err != nil {
		return nil, err
	}
	return rendered, nil
}

// RenderBulk renders one message per transaction in the given status. An
// empty match set returns an empty list.
func (s *MessageService) RenderBulk(status models.TransactionStatus, templateType models.TemplateType, sentBy string) ([]models.RenderedMessage, error) {
	if !status.Valid() {
		return nil, errors.NewBadRequestError(fmt.Sprintf("Invalid status %q", string(status)))
	}

	transactions, err := s.transactionService.GetByStatus(status)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetAll()
	if err != nil {
		return nil, err
	}
	template := selectTemplate(settings, templateType)

	messages := make([]models.RenderedMessage, 0, len(transactions))
	for i := range transactions {
		txn := &transactions[i]
		rendered, err := s.render(txn, settings, template)
		if err != nil {
			return nil, err
		}
		if err := s.log(txn.ID.String(), txn.Phone, rendered.Message, models.MessageTypeWhatsAppBulk, sentBy); err != nil {
			return nil, err
		}
		messages = append(messages, *rendered)
	}

	return messages, nil
}

// GetLog returns the most recent message log entries, newest first.
func (s *MessageService) GetLog(limit int) ([]models.MessageLogEntry, error) {
	if limit <= 0 {
		limit = defaultMessageLogLimit
	}

	var entries []models.MessageLogEntry
	err := s.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get message log")
	}
	return entries, nil
}

func (s *MessageService) GetLogByTxn(txnID string) ([]models.MessageLogEntry, error) {
	var entries []models.MessageLogEntry
	err := s.db.Where("txn_id = ?", txnID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get message log")
	}
	return entries, nil
}
