package service

import (
	"strings"

	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/ledger"
	"github.com/lostandfound/lostandfound/internal/lferror"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/sirupsen/logrus"
)

type (
	// A ReportParams is used when a user reports a lost or found item.
	ReportParams struct {
		Params
		Status        model.Status   `json:"status"`
		Category      string         `json:"category"`
		Description   string         `json:"description"`
		SecretDetails string         `json:"secret_details"`
		ImageURL      string         `json:"image_url"`
		Location      model.Location `json:"location"`
	}

	// A ReportService stores a reported item and credits the reporter of a found item.
	ReportService struct {
		db     database.Client
		ledger *ledger.Ledger
		Params ReportParams

		// Populated during `Execute()`
		Item        *model.Item
		Points      int64
		Awarded     bool
		PointsError error
	}
)

// NewReport instantiates a new Report service.
func NewReport(db database.Client, l *ledger.Ledger, params ReportParams) *ReportService {
	return &ReportService{
		db:     db,
		ledger: l,
		Params: params,
	}
}

// Execute stores the item. The change log entry written with it fires the trigger.
// A failed points award does not fail the report: it is kept in PointsError.
func (s *ReportService) Execute() error {
	if err := s.validate(); err != nil {
		return err
	}

	s.Item = &model.Item{
		UserID:        s.Params.User.ID,
		Status:        s.Params.Status,
		Category:      strings.TrimSpace(s.Params.Category),
		Description:   s.Params.Description,
		SecretDetails: s.Params.SecretDetails,
		ImageURL:      s.Params.ImageURL,
		Location:      s.Params.Location,
	}
	if err := s.db.CreateItem(s.Item); err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{
		"item_id": s.Item.ID,
		"user_id": s.Item.UserID,
		"status":  s.Item.Status,
	})
	log.Info("item reported")

	if !s.Item.IsFound() {
		return nil
	}

	s.Points, s.PointsError = s.ledger.AwardFoundItem(s.Item.UserID)
	if s.PointsError != nil {
		log.WithError(s.PointsError).Error("item reported but points were not awarded")
		return nil
	}
	s.Awarded = true
	return nil
}

func (s *ReportService) validate() error {
	if s.Params.User == nil {
		return lferror.InvalidParameter("Missing reporting user.")
	}

	if !s.Params.Status.Valid() {
		return lferror.InvalidParameter("Status must be LOST or FOUND.")
	}

	if strings.TrimSpace(s.Params.Category) == "" {
		return lferror.InvalidParameter("Category can't be blank.")
	}

	if !ValidLocation(s.Params.Location) {
		return lferror.InvalidParameter("Invalid location.")
	}
	return nil
}
