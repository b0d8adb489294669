package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"gorm.io/gorm"
)

// Text patterns classifying scientific research rows. Conference wins when
// both match.
const (
	ConferencePattern = "%conference%"
	JournalPattern    = "%journal%"
)

// ReportService serves scoped listings and the admin KPI summary
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db: db,
	}
}

// List returns records of kind visible to identity, newest first: every
// owner's rows for an admin, only the caller's own rows otherwise
func (s *ReportService) List(ctx context.Context, identity auth.Identity, kind model.RecordKind) ([]model.Record, error) {
	if err := auth.Guard(identity, auth.LevelAuthenticated); err != nil {
		return nil, err
	}

	table := kind.TableName()
	if table == "" {
		return nil, ErrUnknownKind
	}

	q := s.db.WithContext(ctx).
		Joins("User").
		Order(table + ".created_at DESC").
		Order(table + ".id DESC")
	if !identity.IsAdmin() {
		q = q.Where(table+".user_id = ?", identity.UserID)
	}

	records, err := findRecords(q, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	return records, nil
}

// Listing is one titled group of records
type Listing struct {
	Kind    model.RecordKind `json:"kind"`
	Records []model.Record   `json:"records"`
}

// ListMany runs List for each kind in order
func (s *ReportService) ListMany(ctx context.Context, identity auth.Identity, kinds ...model.RecordKind) ([]Listing, error) {
	out := make([]Listing, 0, len(kinds))
	for _, kind := range kinds {
		records, err := s.List(ctx, identity, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, Listing{Kind: kind, Records: records})
	}
	return out, nil
}

// Overview is the landing listing: academic load and activities
func (s *ReportService) Overview(ctx context.Context, identity auth.Identity) ([]Listing, error) {
	return s.ListMany(ctx, identity, model.KindAcademicLoad, model.KindActivity)
}

func findRecords(q *gorm.DB, kind model.RecordKind) ([]model.Record, error) {
	switch kind {
	case model.KindAcademicLoad:
		return findAs[model.AcademicLoad](q)
	case model.KindPublication:
		return findAs[model.Publication](q)
	case model.KindCriteria:
		return findAs[model.EvaluationCriteria](q)
	case model.KindUniversityEvaluation:
		return findAs[model.UniversityEvaluation](q)
	case model.KindActivity:
		return findAs[model.ActivityParticipation](q)
	case model.KindConference:
		return findAs[model.ConferenceParticipation](q)
	case model.KindUniversityService:
		return findAs[model.UniversityService](q)
	case model.KindResearch:
		return findAs[model.ScientificResearch](q)
	}
	return nil, ErrUnknownKind
}

func findAs[T any, P interface {
	*T
	model.Record
}](q *gorm.DB) ([]model.Record, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Record, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out, nil
}

// Indicator is one line of the KPI table
type Indicator struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Count      int64  `json:"count"`
	Percent    int    `json:"percent"`
	HasPercent bool   `json:"has_percent"`
}

// KPIReport is a point in time snapshot of cross-user aggregates
type KPIReport struct {
	Users                   int64       `json:"users"`
	Admins                  int64       `json:"admins"`
	Faculty                 int64       `json:"faculty"` // users minus admins
	AcademicLoads           int64       `json:"academic_loads"`
	Activities              int64       `json:"activities"`
	UniversityServices      int64       `json:"university_services"`
	ConferencePapers        int64       `json:"conference_papers"`
	JournalPapers           int64       `json:"journal_papers"`
	ConferenceParticipants  int64       `json:"conference_participants"`
	CriteriaEvaluationSum   int64       `json:"criteria_evaluation_sum"`
	UniversityEvaluationSum int64       `json:"university_evaluation_sum"`
	Indicators              []Indicator `json:"indicators"`
	GeneratedAt             time.Time   `json:"generated_at"`
}

// Percent returns round(100*count/faculty), or 0 when there is no faculty
func Percent(count, faculty int64) int {
	if faculty <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(faculty)))
}

// KPIs computes the admin KPI summary
func (s *ReportService) KPIs(ctx context.Context, identity auth.Identity) (*KPIReport, error) {
	if err := auth.Guard(identity, auth.LevelAdmin); err != nil {
		return nil, err
	}
	return s.Snapshot(ctx)
}

// Snapshot computes the KPI summary without an access check. Used by
// scheduled jobs.
func (s *ReportService) Snapshot(ctx context.Context) (*KPIReport, error) {
	db := s.db.WithContext(ctx)
	r := &KPIReport{GeneratedAt: time.Now()}

	counts := []struct {
		model interface{}
		dest  *int64
		name  string
	}{
		{&model.User{}, &r.Users, "users"},
		{&model.AcademicLoad{}, &r.AcademicLoads, "academic load"},
		{&model.ActivityParticipation{}, &r.Activities, "activities"},
		{&model.UniversityService{}, &r.UniversityServices, "university service"},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&r.Admins).Error; err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}

	conference := "(LOWER(research_type) LIKE ? OR LOWER(publisher) LIKE ?)"
	journal := "(LOWER(research_type) LIKE ? OR LOWER(publisher) LIKE ?)"

	if err := db.Model(&model.ScientificResearch{}).
		Where(conference, ConferencePattern, ConferencePattern).
		Count(&r.ConferencePapers).Error; err != nil {
		return nil, fmt.Errorf("failed to count conference papers: %w", err)
	}

	if err := db.Model(&model.ScientificResearch{}).
		Where("NOT "+conference, ConferencePattern, ConferencePattern).
		Where(journal, JournalPattern, JournalPattern).
		Count(&r.JournalPapers).Error; err != nil {
		return nil, fmt.Errorf("failed to count journal papers: %w", err)
	}

	if err := db.Model(&model.ConferenceParticipation{}).
		Distinct("user_id").
		Count(&r.ConferenceParticipants).Error; err != nil {
		return nil, fmt.Errorf("failed to count conference participants: %w", err)
	}

	if err := db.Model(&model.EvaluationCriteria{}).
		Select("COALESCE(SUM(evaluation_sum), 0)").
		Scan(&r.CriteriaEvaluationSum).Error; err != nil {
		return nil, fmt.Errorf("failed to sum criteria evaluations: %w", err)
	}

	if err := db.Model(&model.UniversityEvaluation{}).
		Select("COALESCE(SUM(evaluation_sum), 0)").
		Scan(&r.UniversityEvaluationSum).Error; err != nil {
		return nil, fmt.Errorf("failed to sum university evaluations: %w", err)
	}

	r.Faculty = r.Users - r.Admins
	pct := func(key, label string, count int64) Indicator {
		return Indicator{Key: key, Label: label, Count: count, Percent: Percent(count, r.Faculty), HasPercent: true}
	}
	r.Indicators = []Indicator{
		pct("academic_load", "Academic load records", r.AcademicLoads),
		pct("activities", "Activity participations", r.Activities),
		pct("university_service", "University service tasks", r.UniversityServices),
		pct("conference_papers", "Conference papers", r.ConferencePapers),
		pct("journal_papers", "Journal papers", r.JournalPapers),
		pct("conference_participants", "Faculty participating in conferences", r.ConferenceParticipants),
		{Key: "criteria_evaluation_sum", Label: "Evaluation criteria score total", Count: r.CriteriaEvaluationSum},
		{Key: "university_evaluation_sum", Label: "University evaluation score total", Count: r.UniversityEvaluationSum},
	}

	return r, nil
}
