package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/metrics"
	"github.com/Abdelrazek97/form-app/utils/validation"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review is the admin evaluation payload of one record kind. Scores are
// listed in the same order as Columns.
type Review interface {
	Kind() model.RecordKind
	Columns() []string
	Scores() []string
}

// NewReview returns an empty review payload for kind
func NewReview(kind model.RecordKind) (Review, error) {
	switch kind {
	case model.KindPublication:
		return &PublicationReview{}, nil
	case model.KindCriteria:
		return &CriteriaReview{}, nil
	case model.KindUniversityEvaluation:
		return &UniversityReview{}, nil
	}
	return nil, ErrUnknownKind
}

type PublicationReview struct {
	ScientificResearchEvaluation    string `form:"scientific_research_evaluation" json:"scientific_research_evaluation" validate:"required,integer"`
	SupervisionGraduationEvaluation string `form:"supervision_graduation_evaluation" json:"supervision_graduation_evaluation" validate:"required,integer"`
}

func (r *PublicationReview) Kind() model.RecordKind { return model.KindPublication }

func (r *PublicationReview) Columns() []string {
	return []string{"scientific_research_evaluation", "supervision_graduation_evaluation"}
}

func (r *PublicationReview) Scores() []string {
	return []string{r.ScientificResearchEvaluation, r.SupervisionGraduationEvaluation}
}

type CriteriaReview struct {
	DevelopCoursesEvaluation          string `form:"develop_courses_evaluation" json:"develop_courses_evaluation" validate:"required,integer"`
	PrepareFileEvaluation             string `form:"prepare_file_evaluation" json:"prepare_file_evaluation" validate:"required,integer"`
	ElectronicTestsEvaluation         string `form:"electronic_tests_evaluation" json:"electronic_tests_evaluation" validate:"required,integer"`
	PrepareMaterialContentEvaluation  string `form:"prepare_material_content_evaluation" json:"prepare_material_content_evaluation" validate:"required,integer"`
	UseLearningEffectivelyEvaluation  string `form:"use_learning_effectively_evaluation" json:"use_learning_effectively_evaluation" validate:"required,integer"`
	TeachingMethodsEvaluation         string `form:"teaching_methods_evaluation" json:"teaching_methods_evaluation" validate:"required,integer"`
	MethodsStudentEvaluation          string `form:"methods_student_evaluation" json:"methods_student_evaluation" validate:"required,integer"`
	PreparingTestQuestionsEvaluation  string `form:"preparing_test_questions_evaluation" json:"preparing_test_questions_evaluation" validate:"required,integer"`
	ProvideAcademicGuidanceEvaluation string `form:"provide_academic_guidance_evaluation" json:"provide_academic_guidance_evaluation" validate:"required,integer"`
}

func (r *CriteriaReview) Kind() model.RecordKind { return model.KindCriteria }

func (r *CriteriaReview) Columns() []string {
	return []string{
		"develop_courses_evaluation",
		"prepare_file_evaluation",
		"electronic_tests_evaluation",
		"prepare_material_content_evaluation",
		"use_learning_effectively_evaluation",
		"teaching_methods_evaluation",
		"methods_student_evaluation",
		"preparing_test_questions_evaluation",
		"provide_academic_guidance_evaluation",
	}
}

func (r *CriteriaReview) Scores() []string {
	return []string{
		r.DevelopCoursesEvaluation,
		r.PrepareFileEvaluation,
		r.ElectronicTestsEvaluation,
		r.PrepareMaterialContentEvaluation,
		r.UseLearningEffectivelyEvaluation,
		r.TeachingMethodsEvaluation,
		r.MethodsStudentEvaluation,
		r.PreparingTestQuestionsEvaluation,
		r.ProvideAcademicGuidanceEvaluation,
	}
}

type UniversityReview struct {
	CommitteeWorkEvaluation           string `form:"committee_work_evaluation" json:"committee_work_evaluation" validate:"required,integer"`
	CommunityServiceEvaluation        string `form:"community_service_evaluation" json:"community_service_evaluation" validate:"required,integer"`
	InstitutionalActivitiesEvaluation string `form:"institutional_activities_evaluation" json:"institutional_activities_evaluation" validate:"required,integer"`
	ProfessionalDevelopmentEvaluation string `form:"professional_development_evaluation" json:"professional_development_evaluation" validate:"required,integer"`
}

func (r *UniversityReview) Kind() model.RecordKind { return model.KindUniversityEvaluation }

func (r *UniversityReview) Columns() []string {
	return []string{
		"committee_work_evaluation",
		"community_service_evaluation",
		"institutional_activities_evaluation",
		"professional_development_evaluation",
	}
}

func (r *UniversityReview) Scores() []string {
	return []string{
		r.CommitteeWorkEvaluation,
		r.CommunityServiceEvaluation,
		r.InstitutionalActivitiesEvaluation,
		r.ProfessionalDevelopmentEvaluation,
	}
}

// EvaluationService writes the admin evaluation pass onto existing records
type EvaluationService struct {
	db        *gorm.DB
	validator *validation.Validator
	log       *zap.Logger
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(db *gorm.DB, log *zap.Logger) *EvaluationService {
	return &EvaluationService{
		db:        db,
		validator: validation.NewValidator(),
		log:       log,
	}
}

// AuditMeta describes the request that triggered an evaluation
type AuditMeta struct {
	IPAddress string
	UserAgent string
}

// Get loads one evaluable record with its owner
func (s *EvaluationService) Get(ctx context.Context, identity auth.Identity, kind model.RecordKind, id uint) (model.Record, error) {
	if err := auth.Guard(identity, auth.LevelAdmin); err != nil {
		return nil, err
	}
	if _, err := NewReview(kind); err != nil {
		return nil, err
	}

	record := kind.New()
	err := s.db.WithContext(ctx).Joins("User").First(record, kind.TableName()+".id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s record: %w", kind, err)
	}
	return record, nil
}

// Evaluate validates review and writes its scores plus evaluation_sum onto
// the single record id, with an audit entry, in one transaction
func (s *EvaluationService) Evaluate(ctx context.Context, identity auth.Identity, id uint, review Review, meta AuditMeta) (model.Record, error) {
	if err := auth.Guard(identity, auth.LevelAdmin); err != nil {
		return nil, err
	}

	kind := review.Kind()
	updates, total, err := s.scoreUpdates(review)
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			metrics.FormRejections.WithLabelValues(string(kind), verr.Kind).Inc()
		}
		return nil, err
	}

	record := kind.New()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		oldValue, err := json.Marshal(record)
		if err != nil {
			return err
		}
		newValue, err := json.Marshal(updates)
		if err != nil {
			return err
		}

		if err := tx.Model(record).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(record, id).Error; err != nil {
			return err
		}

		return tx.Create(&model.AdminAuditLog{
			AdminID:     identity.UserID,
			Action:      "evaluation_update",
			Resource:    string(kind),
			ResourceID:  id,
			OldValue:    datatypes.JSON(oldValue),
			NewValue:    datatypes.JSON(newValue),
			IPAddress:   meta.IPAddress,
			UserAgent:   meta.UserAgent,
			Description: fmt.Sprintf("%s #%d evaluated, sum %d", kind.Title(), id, total),
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to evaluate %s record %d: %w", kind, id, err)
	}

	metrics.Evaluations.WithLabelValues(string(kind)).Inc()
	s.log.Info("record evaluated",
		zap.Uint("admin_id", identity.UserID),
		zap.String("kind", string(kind)),
		zap.Uint("record_id", id),
		zap.Int("evaluation_sum", total),
	)
	return record, nil
}

// scoreUpdates validates review and maps each sub-score column to its
// value plus evaluation_sum
func (s *EvaluationService) scoreUpdates(review Review) (map[string]interface{}, int, error) {
	if err := checkForm(s.validator, review); err != nil {
		return nil, 0, err
	}
	var n numbers
	scores := review.Scores()
	updates := make(map[string]interface{}, len(scores)+1)
	total := 0
	for i, col := range review.Columns() {
		score := n.parse(col, scores[i])
		updates[col] = score
		total += score
	}
	if n.err != nil {
		return nil, 0, n.err
	}
	updates["evaluation_sum"] = total
	return updates, total, nil
}
