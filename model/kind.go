package model

// RecordKind identifies one of the user-owned record tables
type RecordKind string

const (
	KindAcademicLoad         RecordKind = "academic_load"
	KindPublication          RecordKind = "publication"
	KindCriteria             RecordKind = "criteria"
	KindUniversityEvaluation RecordKind = "university_evaluation"
	KindActivity             RecordKind = "activity"
	KindConference           RecordKind = "conference"
	KindUniversityService    RecordKind = "university_service"
	KindResearch             RecordKind = "research"
)

// RecordKinds lists every kind in display order
var RecordKinds = []RecordKind{
	KindAcademicLoad,
	KindPublication,
	KindCriteria,
	KindUniversityEvaluation,
	KindActivity,
	KindConference,
	KindUniversityService,
	KindResearch,
}

type kindInfo struct {
	title   string
	columns []string
	newFn   func() Record
}

var kinds = map[RecordKind]kindInfo{
	KindAcademicLoad: {
		title:   "Academic Load",
		columns: []string{"Semester", "Course Code", "Students", "Teaching Load", "Course Name", "Semester Type", "Credit Hours"},
		newFn:   func() Record { return &AcademicLoad{} },
	},
	KindPublication: {
		title:   "Scientific Production",
		columns: []string{"Scientific Research", "Supervision / Graduation", "Research Evaluation", "Supervision Evaluation", "Evaluation Sum"},
		newFn:   func() Record { return &Publication{} },
	},
	KindCriteria: {
		title: "Evaluation Criteria",
		columns: []string{"Develop Courses", "Prepare File", "Electronic Tests", "Material Content", "Learning Effectively",
			"Teaching Methods", "Methods Student", "Test Questions", "Academic Guidance", "Aspects Sum", "Evaluation Sum"},
		newFn: func() Record { return &EvaluationCriteria{} },
	},
	KindUniversityEvaluation: {
		title:   "University Evaluation",
		columns: []string{"Committee Work", "Community Service", "Institutional Activities", "Professional Development", "Aspects Sum", "Evaluation Sum"},
		newFn:   func() Record { return &UniversityEvaluation{} },
	},
	KindActivity: {
		title:   "Activities",
		columns: []string{"Title", "Date", "Duration", "Participation Type", "Place"},
		newFn:   func() Record { return &ActivityParticipation{} },
	},
	KindConference: {
		title:   "Conference Participation",
		columns: []string{"Location", "Participation Type", "Year", "Place"},
		newFn:   func() Record { return &ConferenceParticipation{} },
	},
	KindUniversityService: {
		title:   "University Service",
		columns: []string{"Task Level", "Task Type", "Notes"},
		newFn:   func() Record { return &UniversityService{} },
	},
	KindResearch: {
		title:   "Scientific Research",
		columns: []string{"Scientific Output", "Authors", "Publisher", "Agency", "Year", "Research Type"},
		newFn:   func() Record { return &ScientificResearch{} },
	},
}

// ParseRecordKind validates a kind taken from a URL or query string
func ParseRecordKind(s string) (RecordKind, bool) {
	k := RecordKind(s)
	_, ok := kinds[k]
	return k, ok
}

func (k RecordKind) Title() string {
	return kinds[k].title
}

// Columns returns the display headers matching Record.Cells
func (k RecordKind) Columns() []string {
	return kinds[k].columns
}

// New returns an empty record of this kind, nil for an unknown kind
func (k RecordKind) New() Record {
	info, ok := kinds[k]
	if !ok {
		return nil
	}
	return info.newFn()
}

// TableName returns the backing table of this kind
func (k RecordKind) TableName() string {
	r := k.New()
	if r == nil {
		return ""
	}
	return r.TableName()
}

// AllModels returns every model migrated into the records database
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&AcademicLoad{},
		&Publication{},
		&EvaluationCriteria{},
		&UniversityEvaluation{},
		&ActivityParticipation{},
		&ConferenceParticipation{},
		&UniversityService{},
		&ScientificResearch{},
		&AdminAuditLog{},
		&JWTTokenBlacklist{},
		&CronJobLog{},
	}
}
