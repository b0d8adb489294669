package services

import (
	"encoding/json"
	"testing"

	"github.com/Abdelrazek97/form-app/database/dbtest"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEvaluatePublicationWritesOnlyTargetRecord(t *testing.T) {
	db := dbtest.New(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	mona := createUser(t, db, "mona", model.RoleUser)

	first := model.Publication{UserID: mona.UserID, ScientificResearch: "A", SupervisionGraduation: "B"}
	second := model.Publication{UserID: mona.UserID, ScientificResearch: "C", SupervisionGraduation: "D"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	svc := NewEvaluationService(db, zap.NewNop())
	record, err := svc.Evaluate(ctx, admin, second.ID, &PublicationReview{
		ScientificResearchEvaluation:    "4",
		SupervisionGraduationEvaluation: " 5",
	}, AuditMeta{IPAddress: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)

	evaluated, ok := record.(*model.Publication)
	require.True(t, ok)
	require.NotNil(t, evaluated.EvaluationSum)
	assert.Equal(t, 9, *evaluated.EvaluationSum)

	var untouched model.Publication
	require.NoError(t, db.First(&untouched, first.ID).Error)
	assert.Nil(t, untouched.EvaluationSum)
	assert.Nil(t, untouched.ScientificResearchEvaluation)

	var logs []model.AdminAuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "evaluation_update", logs[0].Action)
	assert.Equal(t, string(model.KindPublication), logs[0].Resource)
	assert.Equal(t, second.ID, logs[0].ResourceID)
	assert.Equal(t, admin.UserID, logs[0].AdminID)
	assert.Equal(t, "10.0.0.1", logs[0].IPAddress)

	var newValue map[string]int
	require.NoError(t, json.Unmarshal(logs[0].NewValue, &newValue))
	assert.Equal(t, 9, newValue["evaluation_sum"])
}

func TestEvaluateCriteriaSumsNineScores(t *testing.T) {
	db := dbtest.New(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	mona := createUser(t, db, "mona", model.RoleUser)

	row := model.EvaluationCriteria{UserID: mona.UserID, AspectsSum: 9}
	require.NoError(t, db.Create(&row).Error)

	review := &CriteriaReview{}
	for _, p := range []*string{
		&review.DevelopCoursesEvaluation, &review.PrepareFileEvaluation, &review.ElectronicTestsEvaluation,
		&review.PrepareMaterialContentEvaluation, &review.UseLearningEffectivelyEvaluation,
		&review.TeachingMethodsEvaluation, &review.MethodsStudentEvaluation,
		&review.PreparingTestQuestionsEvaluation, &review.ProvideAcademicGuidanceEvaluation,
	} {
		*p = "2"
	}

	record, err := NewEvaluationService(db, zap.NewNop()).Evaluate(ctx, admin, row.ID, review, AuditMeta{})
	require.NoError(t, err)

	stored := record.(*model.EvaluationCriteria)
	require.NotNil(t, stored.EvaluationSum)
	assert.Equal(t, 18, *stored.EvaluationSum)
	assert.Equal(t, 9, stored.AspectsSum)
}

func TestEvaluateRejectsNonIntegerScore(t *testing.T) {
	db := dbtest.New(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	mona := createUser(t, db, "mona", model.RoleUser)

	row := model.UniversityEvaluation{UserID: mona.UserID, CommitteeWork: 1}
	require.NoError(t, db.Create(&row).Error)

	_, err := NewEvaluationService(db, zap.NewNop()).Evaluate(ctx, admin, row.ID, &UniversityReview{
		CommitteeWorkEvaluation:           "3",
		CommunityServiceEvaluation:        "3.5",
		InstitutionalActivitiesEvaluation: "3",
		ProfessionalDevelopmentEvaluation: "3",
	}, AuditMeta{})

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotNumeric, verr.Kind)

	var stored model.UniversityEvaluation
	require.NoError(t, db.First(&stored, row.ID).Error)
	assert.Nil(t, stored.EvaluationSum)
	assert.Nil(t, stored.CommitteeWorkEvaluation)

	var logs int64
	require.NoError(t, db.Model(&model.AdminAuditLog{}).Count(&logs).Error)
	assert.Zero(t, logs)
}

func TestEvaluateMissingRecord(t *testing.T) {
	db := dbtest.New(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)

	_, err := NewEvaluationService(db, zap.NewNop()).Evaluate(ctx, admin, 42, &PublicationReview{
		ScientificResearchEvaluation:    "1",
		SupervisionGraduationEvaluation: "1",
	}, AuditMeta{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvaluationRequiresAdmin(t *testing.T) {
	db := dbtest.New(t)
	mona := createUser(t, db, "mona", model.RoleUser)
	row := model.Publication{UserID: mona.UserID, ScientificResearch: "A", SupervisionGraduation: "B"}
	require.NoError(t, db.Create(&row).Error)

	svc := NewEvaluationService(db, zap.NewNop())

	_, err := svc.Get(ctx, mona, model.KindPublication, row.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.Evaluate(ctx, mona, row.ID, &PublicationReview{
		ScientificResearchEvaluation:    "1",
		SupervisionGraduationEvaluation: "1",
	}, AuditMeta{})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestGetLoadsRecordWithOwner(t *testing.T) {
	db := dbtest.New(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	mona := createUser(t, db, "mona", model.RoleUser)
	row := model.Publication{UserID: mona.UserID, ScientificResearch: "A", SupervisionGraduation: "B"}
	require.NoError(t, db.Create(&row).Error)

	svc := NewEvaluationService(db, zap.NewNop())

	record, err := svc.Get(ctx, admin, model.KindPublication, row.ID)
	require.NoError(t, err)
	require.NotNil(t, record.Owner())
	assert.Equal(t, "mona", record.Owner().Username)

	_, err = svc.Get(ctx, admin, model.KindPublication, row.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, admin, model.KindActivity, row.ID)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestEvaluateRejectsOutOfRangeScore(t *testing.T) {
	db := dbtest.New(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	mona := createUser(t, db, "mona", model.RoleUser)

	row := model.Publication{UserID: mona.UserID, ScientificResearch: "A", SupervisionGraduation: "B"}
	require.NoError(t, db.Create(&row).Error)

	_, err := NewEvaluationService(db, zap.NewNop()).Evaluate(ctx, admin, row.ID, &PublicationReview{
		ScientificResearchEvaluation:    "99999999999999999999",
		SupervisionGraduationEvaluation: "1",
	}, AuditMeta{})

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotNumeric, verr.Kind)
	assert.Equal(t, "scientific_research_evaluation", verr.Field)

	var stored model.Publication
	require.NoError(t, db.First(&stored, row.ID).Error)
	assert.Nil(t, stored.EvaluationSum)
	assert.Nil(t, stored.ScientificResearchEvaluation)

	var logs int64
	require.NoError(t, db.Model(&model.AdminAuditLog{}).Count(&logs).Error)
	assert.Zero(t, logs)
}
