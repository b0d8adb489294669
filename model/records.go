package model

import (
	"strconv"
	"time"
)

// Record is implemented by every user-owned record kind
type Record interface {
	TableName() string
	RecordID() uint
	Owner() *User
	Created() time.Time
	// Cells returns display values in the order of RecordKind.Columns
	Cells() []string
}

// AcademicLoad is one taught course for a semester
type AcademicLoad struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Semester     string    `gorm:"not null" json:"semester"`
	CourseCode   string    `gorm:"not null" json:"course_code"`
	NumStudents  *int      `json:"num_students"`
	TeachingLoad string    `gorm:"not null" json:"teaching_load"`
	CourseName   string    `gorm:"not null" json:"course_name"`
	SemesterType string    `gorm:"not null" json:"semester_type"`
	CreditHours  *int      `json:"credit_hours"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (AcademicLoad) TableName() string { return "academic_data" }

func (r *AcademicLoad) RecordID() uint     { return r.ID }
func (r *AcademicLoad) Owner() *User       { return r.User }
func (r *AcademicLoad) Created() time.Time { return r.CreatedAt }

func (r *AcademicLoad) Cells() []string {
	return []string{r.Semester, r.CourseCode, optInt(r.NumStudents), r.TeachingLoad,
		r.CourseName, r.SemesterType, optInt(r.CreditHours)}
}

// Publication holds scientific production text plus reviewer scores
type Publication struct {
	ID                              uint      `gorm:"primaryKey" json:"id"`
	UserID                          uint      `gorm:"not null;index" json:"user_id"`
	ScientificResearch              string    `gorm:"type:text;not null" json:"scientific_research"`
	SupervisionGraduation           string    `gorm:"type:text;not null" json:"supervision_graduation"`
	ScientificResearchEvaluation    *int      `json:"scientific_research_evaluation"`
	SupervisionGraduationEvaluation *int      `json:"supervision_graduation_evaluation"`
	EvaluationSum                   *int      `json:"evaluation_sum"`
	CreatedAt                       time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Publication) TableName() string { return "scientific_production" }

func (r *Publication) RecordID() uint     { return r.ID }
func (r *Publication) Owner() *User       { return r.User }
func (r *Publication) Created() time.Time { return r.CreatedAt }

func (r *Publication) Evaluations() []*int {
	return []*int{r.ScientificResearchEvaluation, r.SupervisionGraduationEvaluation}
}

func (r *Publication) Cells() []string {
	return []string{r.ScientificResearch, r.SupervisionGraduation,
		optInt(r.ScientificResearchEvaluation), optInt(r.SupervisionGraduationEvaluation), optInt(r.EvaluationSum)}
}

// EvaluationCriteria is a self assessment over nine teaching aspects
type EvaluationCriteria struct {
	ID                      uint `gorm:"primaryKey" json:"id"`
	UserID                  uint `gorm:"not null;index" json:"user_id"`
	DevelopCourses          int  `gorm:"not null" json:"develop_courses"`
	PrepareFile             int  `gorm:"not null" json:"prepare_file"`
	ElectronicTests         int  `gorm:"not null" json:"electronic_tests"`
	PrepareMaterialContent  int  `gorm:"not null" json:"prepare_material_content"`
	UseLearningEffectively  int  `gorm:"not null" json:"use_learning_effectively"`
	TeachingMethods         int  `gorm:"not null" json:"teaching_methods"`
	MethodsStudent          int  `gorm:"not null" json:"methods_student"`
	PreparingTestQuestions  int  `gorm:"not null" json:"preparing_test_questions"`
	ProvideAcademicGuidance int  `gorm:"not null" json:"provide_academic_guidance"`
	AspectsSum              int  `gorm:"not null" json:"aspects_sum"`

	DevelopCoursesEvaluation          *int      `json:"develop_courses_evaluation"`
	PrepareFileEvaluation             *int      `json:"prepare_file_evaluation"`
	ElectronicTestsEvaluation         *int      `json:"electronic_tests_evaluation"`
	PrepareMaterialContentEvaluation  *int      `json:"prepare_material_content_evaluation"`
	UseLearningEffectivelyEvaluation  *int      `json:"use_learning_effectively_evaluation"`
	TeachingMethodsEvaluation         *int      `json:"teaching_methods_evaluation"`
	MethodsStudentEvaluation          *int      `json:"methods_student_evaluation"`
	PreparingTestQuestionsEvaluation  *int      `json:"preparing_test_questions_evaluation"`
	ProvideAcademicGuidanceEvaluation *int      `json:"provide_academic_guidance_evaluation"`
	EvaluationSum                     *int      `json:"evaluation_sum"`
	CreatedAt                         time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (EvaluationCriteria) TableName() string { return "evaluation_aspects" }

func (r *EvaluationCriteria) RecordID() uint     { return r.ID }
func (r *EvaluationCriteria) Owner() *User       { return r.User }
func (r *EvaluationCriteria) Created() time.Time { return r.CreatedAt }

// Aspects returns the nine self-assessed scores in column order
func (r *EvaluationCriteria) Aspects() []int {
	return []int{r.DevelopCourses, r.PrepareFile, r.ElectronicTests, r.PrepareMaterialContent,
		r.UseLearningEffectively, r.TeachingMethods, r.MethodsStudent, r.PreparingTestQuestions,
		r.ProvideAcademicGuidance}
}

// Evaluations returns the nine reviewer scores in column order
func (r *EvaluationCriteria) Evaluations() []*int {
	return []*int{r.DevelopCoursesEvaluation, r.PrepareFileEvaluation, r.ElectronicTestsEvaluation,
		r.PrepareMaterialContentEvaluation, r.UseLearningEffectivelyEvaluation, r.TeachingMethodsEvaluation,
		r.MethodsStudentEvaluation, r.PreparingTestQuestionsEvaluation, r.ProvideAcademicGuidanceEvaluation}
}

func (r *EvaluationCriteria) Cells() []string {
	cells := make([]string, 0, 12)
	for _, v := range r.Aspects() {
		cells = append(cells, strconv.Itoa(v))
	}
	return append(cells, strconv.Itoa(r.AspectsSum), optInt(r.EvaluationSum))
}

// UniversityEvaluation is a self assessment over four service aspects
type UniversityEvaluation struct {
	ID                      uint `gorm:"primaryKey" json:"id"`
	UserID                  uint `gorm:"not null;index" json:"user_id"`
	CommitteeWork           int  `gorm:"not null" json:"committee_work"`
	CommunityService        int  `gorm:"not null" json:"community_service"`
	InstitutionalActivities int  `gorm:"not null" json:"institutional_activities"`
	ProfessionalDevelopment int  `gorm:"not null" json:"professional_development"`
	AspectsSum              int  `gorm:"not null" json:"aspects_sum"`

	CommitteeWorkEvaluation           *int      `json:"committee_work_evaluation"`
	CommunityServiceEvaluation        *int      `json:"community_service_evaluation"`
	InstitutionalActivitiesEvaluation *int      `json:"institutional_activities_evaluation"`
	ProfessionalDevelopmentEvaluation *int      `json:"professional_development_evaluation"`
	EvaluationSum                     *int      `json:"evaluation_sum"`
	CreatedAt                         time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (UniversityEvaluation) TableName() string { return "university_evaluation" }

func (r *UniversityEvaluation) RecordID() uint     { return r.ID }
func (r *UniversityEvaluation) Owner() *User       { return r.User }
func (r *UniversityEvaluation) Created() time.Time { return r.CreatedAt }

func (r *UniversityEvaluation) Aspects() []int {
	return []int{r.CommitteeWork, r.CommunityService, r.InstitutionalActivities, r.ProfessionalDevelopment}
}

func (r *UniversityEvaluation) Evaluations() []*int {
	return []*int{r.CommitteeWorkEvaluation, r.CommunityServiceEvaluation,
		r.InstitutionalActivitiesEvaluation, r.ProfessionalDevelopmentEvaluation}
}

func (r *UniversityEvaluation) Cells() []string {
	cells := make([]string, 0, 6)
	for _, v := range r.Aspects() {
		cells = append(cells, strconv.Itoa(v))
	}
	return append(cells, strconv.Itoa(r.AspectsSum), optInt(r.EvaluationSum))
}

// ActivityParticipation records attendance at a workshop, course or event
type ActivityParticipation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	ActivityTitle     string    `gorm:"not null" json:"activity_title"`
	ActivityDate      string    `gorm:"not null" json:"activity_date"`
	Duration          string    `gorm:"not null" json:"duration"`
	ParticipationType string    `gorm:"not null" json:"participation_type"`
	Place             string    `gorm:"not null" json:"place"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (ActivityParticipation) TableName() string { return "activity_data" }

func (r *ActivityParticipation) RecordID() uint     { return r.ID }
func (r *ActivityParticipation) Owner() *User       { return r.User }
func (r *ActivityParticipation) Created() time.Time { return r.CreatedAt }

func (r *ActivityParticipation) Cells() []string {
	return []string{r.ActivityTitle, r.ActivityDate, r.Duration, r.ParticipationType, r.Place}
}

// ConferenceParticipation records attendance at a conference
type ConferenceParticipation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	Location          string    `gorm:"not null" json:"location"`
	ParticipationType string    `gorm:"not null" json:"participation_type"`
	Year              int       `gorm:"not null" json:"year"`
	Place             string    `gorm:"not null" json:"place"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (ConferenceParticipation) TableName() string { return "conference_participation" }

func (r *ConferenceParticipation) RecordID() uint     { return r.ID }
func (r *ConferenceParticipation) Owner() *User       { return r.User }
func (r *ConferenceParticipation) Created() time.Time { return r.CreatedAt }

func (r *ConferenceParticipation) Cells() []string {
	return []string{r.Location, r.ParticipationType, strconv.Itoa(r.Year), r.Place}
}

// UniversityService is a committee or administrative task
type UniversityService struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TaskLevel string    `gorm:"not null" json:"task_level"`
	TaskType  string    `gorm:"not null" json:"task_type"`
	Notes     string    `gorm:"type:text;not null" json:"notes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (UniversityService) TableName() string { return "university_service" }

func (r *UniversityService) RecordID() uint     { return r.ID }
func (r *UniversityService) Owner() *User       { return r.User }
func (r *UniversityService) Created() time.Time { return r.CreatedAt }

func (r *UniversityService) Cells() []string {
	return []string{r.TaskLevel, r.TaskType, r.Notes}
}

// ScientificResearch is a published research output (the "program" form)
type ScientificResearch struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	ScientificOutput string    `gorm:"not null" json:"scientific_output"`
	AuthorsNames     string    `gorm:"not null" json:"authors_names"`
	Publisher        string    `gorm:"not null" json:"publisher"`
	Agency           string    `gorm:"not null" json:"agency"`
	Year             int       `gorm:"not null" json:"year"`
	ResearchType     string    `gorm:"not null" json:"research_type"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (ScientificResearch) TableName() string { return "scientific_research" }

func (r *ScientificResearch) RecordID() uint     { return r.ID }
func (r *ScientificResearch) Owner() *User       { return r.User }
func (r *ScientificResearch) Created() time.Time { return r.CreatedAt }

func (r *ScientificResearch) Cells() []string {
	return []string{r.ScientificOutput, r.AuthorsNames, r.Publisher, r.Agency,
		strconv.Itoa(r.Year), r.ResearchType}
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
