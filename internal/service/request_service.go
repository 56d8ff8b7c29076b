package service

import (
	"errors"
	"fmt"
	"time"

	"baranggo/internal/domain"
	"baranggo/internal/models"
	"baranggo/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid status")

type RequestService struct {
	db      *gorm.DB
	repo    *repository.RequestRepository
	history *repository.HistoryRepository
	notif   *NotificationService
}

func NewRequestService(db *gorm.DB, repo *repository.RequestRepository, history *repository.HistoryRepository, notif *NotificationService) *RequestService {
	return &RequestService{db: db, repo: repo, history: history, notif: notif}
}

// Create persists a new document request and its transaction history row in
// one transaction, then fans out notifications best-effort after commit.
func (s *RequestService) Create(req models.DocumentRequest) error {
	core := req.Core()
	core.Status = domain.StatusPending
	core.IsVerified = false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, req); err != nil {
			return err
		}
		return s.history.Create(tx, &models.TransactionHistory{
			RequestKind:       req.Kind(),
			RequestID:         core.ID,
			ResidentName:      core.RequesterName,
			Barangay:          core.Barangay,
			RequestedDocument: domain.KindLabel(req.Kind()),
			Action:            "created",
			Status:            core.Status,
			DateRequested:     time.Now(),
		})
	})
	if err != nil {
		return err
	}

	if s.notif != nil {
		if err := s.notif.NotifyRequestSubmitted(core.UserID, req.Kind(), core.ID); err != nil {
			logrus.WithError(err).WithField("request_id", core.ID).Error("notify submitter")
		}
		s.notif.NotifyStaffNewRequest(core.Barangay, core.RequesterName, req.Kind(), core.ID)
	}
	return nil
}

// UpdateStatus transitions a request to the target status. The raw status is
// matched case-insensitively against the canonical set; unknown values are
// rejected naming the offending value. DateApproved and DateCompleted are
// stamped the first time their status is reached and never overwritten.
func (s *RequestService) UpdateStatus(kind string, id uint, rawStatus, approverName string) (models.DocumentRequest, error) {
	status, ok := domain.NormalizeRequestStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}

	var req models.DocumentRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		req, err = s.repo.GetByKindID(tx, kind, id)
		if err != nil {
			return err
		}
		core := req.Core()
		now := time.Now()
		core.Status = status
		core.IsVerified = domain.IsVerifiedStatus(status)
		if approverName != "" {
			core.ApprovedBy = approverName
		}
		if status == domain.StatusApproved && core.DateApproved == nil {
			core.DateApproved = &now
		}
		if status == domain.StatusCompleted && core.DateCompleted == nil {
			core.DateCompleted = &now
		}
		if err := s.repo.Save(tx, req); err != nil {
			return err
		}

		h, err := s.history.GetByRequest(tx, kind, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Request predates history tracking; nothing to mirror.
				return nil
			}
			return err
		}
		h.Status = core.Status
		h.Action = "status_updated"
		h.ApprovedBy = core.ApprovedBy
		h.DateApproved = core.DateApproved
		h.DateCompleted = core.DateCompleted
		return s.history.Save(tx, h)
	})
	if err != nil {
		return nil, err
	}

	s.notifyRequester(req, status)
	return req, nil
}

// notifyRequester resolves the recipient by user id, falling back to email
// lookup when no id linkage exists. Failures are logged, never returned.
func (s *RequestService) notifyRequester(req models.DocumentRequest, status string) {
	if s.notif == nil {
		return
	}
	core := req.Core()
	label := domain.KindLabel(req.Kind())
	title := label + " " + status
	message := "Your " + label + " request is now " + status + "."

	var err error
	if core.UserID != 0 {
		err = s.notif.Notify(core.UserID, domain.NotifCategoryStatusUpdate, title, message, req.Kind(), core.ID)
	} else if core.Email != "" {
		err = s.notif.NotifyByEmail(core.Email, domain.NotifCategoryStatusUpdate, title, message, req.Kind(), core.ID)
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind":       req.Kind(),
			"request_id": core.ID,
		}).Error("notify requester")
	}
}
