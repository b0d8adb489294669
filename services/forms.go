package services

import (
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/validation"
)

// RecordForm is the typed payload of one record kind. It is bound from the
// request, validated, and re-rendered unchanged when rejected.
type RecordForm interface {
	Kind() model.RecordKind
	// build converts a validated form into a record owned by userID. A
	// numeric field that still fails to parse yields a *ValidationError.
	build(userID uint) (model.Record, error)
}

// NewRecordForm returns an empty payload for kind
func NewRecordForm(kind model.RecordKind) (RecordForm, error) {
	switch kind {
	case model.KindAcademicLoad:
		return &AcademicLoadForm{}, nil
	case model.KindPublication:
		return &PublicationForm{}, nil
	case model.KindCriteria:
		return &CriteriaForm{}, nil
	case model.KindUniversityEvaluation:
		return &UniversityEvaluationForm{}, nil
	case model.KindActivity:
		return &ActivityForm{}, nil
	case model.KindConference:
		return &ConferenceForm{}, nil
	case model.KindUniversityService:
		return &UniversityServiceForm{}, nil
	case model.KindResearch:
		return &ResearchForm{}, nil
	}
	return nil, ErrUnknownKind
}

// checkForm trims every field then applies presence before numeric checks
func checkForm(v *validation.Validator, form interface{}) error {
	validation.SanitizeStruct(form)
	err := v.ValidateStruct(form)
	if err == nil {
		return nil
	}
	missing, invalid := validation.FieldErrors(err)
	var verr *ValidationError
	switch {
	case len(missing) > 0:
		verr = missingFields()
	case len(invalid) > 0:
		verr = notNumeric(invalid[0])
	default:
		return err
	}
	verr.Details = validation.FormatValidationErrors(err)
	return verr
}

// numbers converts integer fields, keeping the first failure in err
type numbers struct {
	err error
}

func (n *numbers) parse(field, s string) int {
	v, err := validation.ParseInt(s)
	if err != nil && n.err == nil {
		n.err = notNumeric(field)
	}
	return v
}

// opt returns nil for an empty optional field
func (n *numbers) opt(field, s string) *int {
	if s == "" {
		return nil
	}
	v := n.parse(field, s)
	return &v
}

func sum(values ...int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

type AcademicLoadForm struct {
	Semester     string `form:"semester" json:"semester" validate:"required"`
	CourseCode   string `form:"course_code" json:"course_code" validate:"required"`
	NumStudents  string `form:"num_students" json:"num_students" validate:"omitempty,integer"`
	TeachingLoad string `form:"teaching_load" json:"teaching_load" validate:"required"`
	CourseName   string `form:"course_name" json:"course_name" validate:"required"`
	SemesterType string `form:"semester_type" json:"semester_type" validate:"required"`
	CreditHours  string `form:"credit_hours" json:"credit_hours" validate:"omitempty,integer"`
}

func (f *AcademicLoadForm) Kind() model.RecordKind { return model.KindAcademicLoad }

func (f *AcademicLoadForm) build(userID uint) (model.Record, error) {
	var n numbers
	r := &model.AcademicLoad{
		UserID:       userID,
		Semester:     f.Semester,
		CourseCode:   f.CourseCode,
		NumStudents:  n.opt("num_students", f.NumStudents),
		TeachingLoad: f.TeachingLoad,
		CourseName:   f.CourseName,
		SemesterType: f.SemesterType,
		CreditHours:  n.opt("credit_hours", f.CreditHours),
	}
	return r, n.err
}

type PublicationForm struct {
	ScientificResearch    string `form:"scientific_research" json:"scientific_research" validate:"required"`
	SupervisionGraduation string `form:"supervision_graduation" json:"supervision_graduation" validate:"required"`
}

func (f *PublicationForm) Kind() model.RecordKind { return model.KindPublication }

func (f *PublicationForm) build(userID uint) (model.Record, error) {
	return &model.Publication{
		UserID:                userID,
		ScientificResearch:    f.ScientificResearch,
		SupervisionGraduation: f.SupervisionGraduation,
	}, nil
}

type CriteriaForm struct {
	DevelopCourses          string `form:"develop_courses" json:"develop_courses" validate:"required,integer"`
	PrepareFile             string `form:"prepare_file" json:"prepare_file" validate:"required,integer"`
	ElectronicTests         string `form:"electronic_tests" json:"electronic_tests" validate:"required,integer"`
	PrepareMaterialContent  string `form:"prepare_material_content" json:"prepare_material_content" validate:"required,integer"`
	UseLearningEffectively  string `form:"use_learning_effectively" json:"use_learning_effectively" validate:"required,integer"`
	TeachingMethods         string `form:"teaching_methods" json:"teaching_methods" validate:"required,integer"`
	MethodsStudent          string `form:"methods_student" json:"methods_student" validate:"required,integer"`
	PreparingTestQuestions  string `form:"preparing_test_questions" json:"preparing_test_questions" validate:"required,integer"`
	ProvideAcademicGuidance string `form:"provide_academic_guidance" json:"provide_academic_guidance" validate:"required,integer"`
}

func (f *CriteriaForm) Kind() model.RecordKind { return model.KindCriteria }

func (f *CriteriaForm) build(userID uint) (model.Record, error) {
	var n numbers
	r := &model.EvaluationCriteria{
		UserID:                  userID,
		DevelopCourses:          n.parse("develop_courses", f.DevelopCourses),
		PrepareFile:             n.parse("prepare_file", f.PrepareFile),
		ElectronicTests:         n.parse("electronic_tests", f.ElectronicTests),
		PrepareMaterialContent:  n.parse("prepare_material_content", f.PrepareMaterialContent),
		UseLearningEffectively:  n.parse("use_learning_effectively", f.UseLearningEffectively),
		TeachingMethods:         n.parse("teaching_methods", f.TeachingMethods),
		MethodsStudent:          n.parse("methods_student", f.MethodsStudent),
		PreparingTestQuestions:  n.parse("preparing_test_questions", f.PreparingTestQuestions),
		ProvideAcademicGuidance: n.parse("provide_academic_guidance", f.ProvideAcademicGuidance),
	}
	if n.err != nil {
		return nil, n.err
	}
	r.AspectsSum = sum(r.Aspects()...)
	return r, nil
}

type UniversityEvaluationForm struct {
	CommitteeWork           string `form:"committee_work" json:"committee_work" validate:"required,integer"`
	CommunityService        string `form:"community_service" json:"community_service" validate:"required,integer"`
	InstitutionalActivities string `form:"institutional_activities" json:"institutional_activities" validate:"required,integer"`
	ProfessionalDevelopment string `form:"professional_development" json:"professional_development" validate:"required,integer"`
}

func (f *UniversityEvaluationForm) Kind() model.RecordKind { return model.KindUniversityEvaluation }

func (f *UniversityEvaluationForm) build(userID uint) (model.Record, error) {
	var n numbers
	r := &model.UniversityEvaluation{
		UserID:                  userID,
		CommitteeWork:           n.parse("committee_work", f.CommitteeWork),
		CommunityService:        n.parse("community_service", f.CommunityService),
		InstitutionalActivities: n.parse("institutional_activities", f.InstitutionalActivities),
		ProfessionalDevelopment: n.parse("professional_development", f.ProfessionalDevelopment),
	}
	if n.err != nil {
		return nil, n.err
	}
	r.AspectsSum = sum(r.Aspects()...)
	return r, nil
}

type ActivityForm struct {
	ActivityTitle     string `form:"activity_title" json:"activity_title" validate:"required"`
	ActivityDate      string `form:"activity_date" json:"activity_date" validate:"required"`
	Duration          string `form:"duration" json:"duration" validate:"required"`
	ParticipationType string `form:"participation_type" json:"participation_type" validate:"required"`
	Place             string `form:"place" json:"place" validate:"required"`
}

func (f *ActivityForm) Kind() model.RecordKind { return model.KindActivity }

func (f *ActivityForm) build(userID uint) (model.Record, error) {
	return &model.ActivityParticipation{
		UserID:            userID,
		ActivityTitle:     f.ActivityTitle,
		ActivityDate:      f.ActivityDate,
		Duration:          f.Duration,
		ParticipationType: f.ParticipationType,
		Place:             f.Place,
	}, nil
}

type ConferenceForm struct {
	Location          string `form:"location" json:"location" validate:"required"`
	ParticipationType string `form:"participation_type" json:"participation_type" validate:"required"`
	Year              string `form:"year" json:"year" validate:"required,integer"`
	Place             string `form:"place" json:"place" validate:"required"`
}

func (f *ConferenceForm) Kind() model.RecordKind { return model.KindConference }

func (f *ConferenceForm) build(userID uint) (model.Record, error) {
	var n numbers
	r := &model.ConferenceParticipation{
		UserID:            userID,
		Location:          f.Location,
		ParticipationType: f.ParticipationType,
		Year:              n.parse("year", f.Year),
		Place:             f.Place,
	}
	return r, n.err
}

type UniversityServiceForm struct {
	TaskLevel string `form:"task_level" json:"task_level" validate:"required"`
	TaskType  string `form:"task_type" json:"task_type" validate:"required"`
	Notes     string `form:"notes" json:"notes" validate:"required"`
}

func (f *UniversityServiceForm) Kind() model.RecordKind { return model.KindUniversityService }

func (f *UniversityServiceForm) build(userID uint) (model.Record, error) {
	return &model.UniversityService{
		UserID:    userID,
		TaskLevel: f.TaskLevel,
		TaskType:  f.TaskType,
		Notes:     f.Notes,
	}, nil
}

type ResearchForm struct {
	ScientificOutput string `form:"scientific_output" json:"scientific_output" validate:"required"`
	AuthorsNames     string `form:"authors_names" json:"authors_names" validate:"required"`
	Publisher        string `form:"publisher" json:"publisher" validate:"required"`
	Agency           string `form:"agency" json:"agency" validate:"required"`
	Year             string `form:"year" json:"year" validate:"required,integer"`
	ResearchType     string `form:"research_type" json:"research_type" validate:"required"`
}

func (f *ResearchForm) Kind() model.RecordKind { return model.KindResearch }

func (f *ResearchForm) build(userID uint) (model.Record, error) {
	var n numbers
	r := &model.ScientificResearch{
		UserID:           userID,
		ScientificOutput: f.ScientificOutput,
		AuthorsNames:     f.AuthorsNames,
		Publisher:        f.Publisher,
		Agency:           f.Agency,
		Year:             n.parse("year", f.Year),
		ResearchType:     f.ResearchType,
	}
	return r, n.err
}
