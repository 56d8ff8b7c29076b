package service

import (
	"fmt"

	"baranggo/internal/domain"
	"baranggo/internal/models"
	"baranggo/internal/repository"

	"github.com/sirupsen/logrus"
)

// Pusher delivers a payload to a user's live connections. The ws hub
// implements it; tests substitute their own.
type Pusher interface {
	BroadcastToUser(userID uint, payload interface{})
}

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	hub      Pusher
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, hub Pusher) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, hub: hub}
}

// Notify stores a notification for one user and pushes it over the live
// stream. relatedKind must be a known document kind or empty.
func (s *NotificationService) Notify(userID uint, category, title, message, relatedKind string, relatedID uint) error {
	if relatedKind != "" && !domain.ValidRelatedKind(relatedKind) {
		return fmt.Errorf("unknown related document kind %q", relatedKind)
	}
	n := &models.Notification{
		UserID:      userID,
		Title:       title,
		Message:     message,
		Category:    category,
		RelatedKind: relatedKind,
		RelatedID:   relatedID,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastToUser(userID, n)
	}
	return nil
}

// NotifyByEmail resolves the recipient by email; used when a request has no
// user id linkage.
func (s *NotificationService) NotifyByEmail(email, category, title, message, relatedKind string, relatedID uint) error {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	return s.Notify(u.ID, category, title, message, relatedKind, relatedID)
}

// NotifyBarangayStaff fans out to every active secretary and chairman in
// the barangay. Delivery is best-effort per recipient: one failure is
// logged and the rest still receive theirs. Returns the delivered count.
func (s *NotificationService) NotifyBarangayStaff(barangay, category, title, message, relatedKind string, relatedID uint) int {
	staff, err := s.userRepo.ListActiveStaffByBarangay(barangay)
	if err != nil {
		logrus.WithError(err).WithField("barangay", barangay).Error("notification fan-out: list staff")
		return 0
	}
	delivered := 0
	for _, member := range staff {
		if err := s.Notify(member.ID, category, title, message, relatedKind, relatedID); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"recipient": member.ID,
				"barangay":  barangay,
			}).Error("notification fan-out: deliver")
			continue
		}
		delivered++
	}
	return delivered
}

func (s *NotificationService) NotifyRequestSubmitted(userID uint, kind string, requestID uint) error {
	label := domain.KindLabel(kind)
	return s.Notify(userID, domain.NotifCategoryRequest,
		label+" request submitted",
		"Your "+label+" request has been received and is pending review.",
		kind, requestID)
}

func (s *NotificationService) NotifyStaffNewRequest(barangay, requesterName, kind string, requestID uint) int {
	label := domain.KindLabel(kind)
	return s.NotifyBarangayStaff(barangay, domain.NotifCategoryRequest,
		"New "+label+" request",
		requesterName+" submitted a "+label+" request.",
		kind, requestID)
}

func (s *NotificationService) NotifyStaffNewBlotter(barangay, complainantName string, reportID uint) int {
	return s.NotifyBarangayStaff(barangay, domain.NotifCategoryRequest,
		"New blotter report",
		complainantName+" filed a blotter report.",
		domain.KindBlotter, reportID)
}

func (s *NotificationService) NotifyAccountVerified(userID uint) error {
	return s.Notify(userID, domain.NotifCategoryVerification,
		"Account verified",
		"Your account has been verified. You may now request documents.",
		"", 0)
}
