package services

import (
	"context"
	"fmt"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/metrics"
	"github.com/Abdelrazek97/form-app/utils/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecordService performs form intake for every owned record kind
type RecordService struct {
	db        *gorm.DB
	validator *validation.Validator
	log       *zap.Logger
}

// NewRecordService creates a new record service
func NewRecordService(db *gorm.DB, log *zap.Logger) *RecordService {
	return &RecordService{
		db:        db,
		validator: validation.NewValidator(),
		log:       log,
	}
}

// Create validates form and inserts one record owned by the session user.
// Rejections are returned as *ValidationError and write nothing.
func (s *RecordService) Create(ctx context.Context, identity auth.Identity, form RecordForm) (model.Record, error) {
	if err := auth.Guard(identity, auth.LevelAuthenticated); err != nil {
		return nil, err
	}

	kind := form.Kind()
	record, err := s.buildRecord(identity.UserID, form)
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			metrics.FormRejections.WithLabelValues(string(kind), verr.Kind).Inc()
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", kind, err)
	}

	metrics.RecordsCreated.WithLabelValues(string(kind)).Inc()
	s.log.Info("record created",
		zap.Uint("user_id", identity.UserID),
		zap.String("kind", string(kind)),
		zap.Uint("record_id", record.RecordID()),
	)
	return record, nil
}

func (s *RecordService) buildRecord(userID uint, form RecordForm) (model.Record, error) {
	if err := checkForm(s.validator, form); err != nil {
		return nil, err
	}
	return form.build(userID)
}
