package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/containrrr/shoutrrr"
	"gorm.io/gorm"

	"github.com/aziwar/dr-islam-website/backend/internal/logger"
	"github.com/aziwar/dr-islam-website/backend/internal/models"
	"github.com/aziwar/dr-islam-website/backend/internal/util"
)

// ErrInvalidContact is returned when a submission fails field validation.
var ErrInvalidContact = errors.New("invalid contact submission")

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	maxNameLen    = 100
	maxEmailLen   = 254
	maxPhoneLen   = 30
	maxMessageLen = 3000
)

// ContactService validates and stores contact-form submissions and fans
// out notifications to the configured shoutrrr destinations.
type ContactService struct {
	db         *gorm.DB
	notifyURLs []string
}

// NewContactService creates a contact service instance.
func NewContactService(db *gorm.DB, notifyURLs []string) *ContactService {
	return &ContactService{db: db, notifyURLs: notifyURLs}
}

func validateMessage(msg *models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Message = strings.TrimSpace(msg.Message)

	switch {
	case msg.Name == "" || len(msg.Name) > maxNameLen:
		return fmt.Errorf("%w: name", ErrInvalidContact)
	case msg.Email == "" || len(msg.Email) > maxEmailLen || !emailRegex.MatchString(msg.Email):
		return fmt.Errorf("%w: email", ErrInvalidContact)
	case len(msg.Phone) > maxPhoneLen:
		return fmt.Errorf("%w: phone", ErrInvalidContact)
	case msg.Message == "" || len(msg.Message) > maxMessageLen:
		return fmt.Errorf("%w: message", ErrInvalidContact)
	}

	if msg.Language != "ar" {
		msg.Language = "en"
	}
	return nil
}

// Submit validates and persists a message, then notifies asynchronously.
// Notification failures never fail the submission; the record is already
// safe in the database.
func (s *ContactService) Submit(msg *models.ContactMessage) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	if err := s.db.Create(msg).Error; err != nil {
		return fmt.Errorf("store contact message: %w", err)
	}

	go s.notify(fmt.Sprintf("New contact message from %s", msg.Name),
		fmt.Sprintf("From: %s <%s>\nPhone: %s\nLanguage: %s\n\n%s",
			msg.Name, msg.Email, msg.Phone, msg.Language, msg.Message))

	logger.WithFields(map[string]interface{}{
		"name":     util.SanitizeForLog(msg.Name),
		"language": msg.Language,
	}).Info("contact message received")

	return nil
}

// Notify sends a free-form notification to all configured destinations.
// Used by the cron reminder as well as contact submissions.
func (s *ContactService) Notify(title, body string) {
	s.notify(title, body)
}

func (s *ContactService) notify(title, body string) {
	msg := fmt.Sprintf("%s\n\n%s", title, body)
	for _, url := range s.notifyURLs {
		if err := shoutrrr.Send(url, msg); err != nil {
			logger.Log().WithError(err).Warn("failed to send notification")
		}
	}
}
