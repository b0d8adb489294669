package records

import (
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/view"
)

// FormPage binds a record kind to its entry route and inputs
type FormPage struct {
	Kind   model.RecordKind
	Path   string
	Title  string
	Fields []view.Field
}

func text(name, label string) view.Field   { return view.Field{Name: name, Label: label, Type: "text"} }
func number(name, label string) view.Field { return view.Field{Name: name, Label: label, Type: "number"} }
func area(name, label string) view.Field   { return view.Field{Name: name, Label: label, Type: "textarea"} }

func choice(name, label string, options ...string) view.Field {
	return view.Field{Name: name, Label: label, Type: "select", Options: options}
}

func optional(f view.Field) view.Field {
	f.Optional = true
	return f
}

var scores = []string{"1", "2", "3", "4", "5"}

// FormPages lists the entry forms in menu order
var FormPages = []FormPage{
	{
		Kind:  model.KindAcademicLoad,
		Path:  "/semester_add",
		Title: "Add Academic Load",
		Fields: []view.Field{
			text("semester", "Semester"),
			text("course_code", "Course code"),
			optional(number("num_students", "Number of students")),
			text("teaching_load", "Teaching load"),
			text("course_name", "Course name"),
			choice("semester_type", "Semester type", "First", "Second", "Summer"),
			optional(number("credit_hours", "Credit hours")),
		},
	},
	{
		Kind:  model.KindPublication,
		Path:  "/Scientific_production",
		Title: "Add Scientific Production",
		Fields: []view.Field{
			area("scientific_research", "Scientific research"),
			area("supervision_graduation", "Supervision of graduation projects"),
		},
	},
	{
		Kind:  model.KindCriteria,
		Path:  "/cirteria_add",
		Title: "Add Evaluation Criteria",
		Fields: []view.Field{
			choice("develop_courses", "Developing courses", scores...),
			choice("prepare_file", "Preparing the course file", scores...),
			choice("electronic_tests", "Electronic tests", scores...),
			choice("prepare_material_content", "Preparing material content", scores...),
			choice("use_learning_effectively", "Using e-learning effectively", scores...),
			choice("teaching_methods", "Teaching methods", scores...),
			choice("methods_student", "Student assessment methods", scores...),
			choice("preparing_test_questions", "Preparing test questions", scores...),
			choice("provide_academic_guidance", "Providing academic guidance", scores...),
		},
	},
	{
		Kind:  model.KindUniversityEvaluation,
		Path:  "/university_evaluation_add",
		Title: "Add University Evaluation",
		Fields: []view.Field{
			choice("committee_work", "Committee work", scores...),
			choice("community_service", "Community service", scores...),
			choice("institutional_activities", "Institutional activities", scores...),
			choice("professional_development", "Professional development", scores...),
		},
	},
	{
		Kind:  model.KindActivity,
		Path:  "/activity_add",
		Title: "Add Activity",
		Fields: []view.Field{
			text("activity_title", "Activity title"),
			{Name: "activity_date", Label: "Date", Type: "date"},
			text("duration", "Duration"),
			choice("participation_type", "Participation type", "Attendee", "Trainer", "Organizer"),
			text("place", "Place"),
		},
	},
	{
		Kind:  model.KindConference,
		Path:  "/prticipation_add",
		Title: "Add Conference Participation",
		Fields: []view.Field{
			text("location", "Conference"),
			choice("participation_type", "Participation type", "Attendee", "Speaker", "Organizer"),
			number("year", "Year"),
			text("place", "Place"),
		},
	},
	{
		Kind:  model.KindUniversityService,
		Path:  "/university_service_add",
		Title: "Add University Service",
		Fields: []view.Field{
			choice("task_level", "Task level", "Department", "College", "University"),
			text("task_type", "Task type"),
			area("notes", "Notes"),
		},
	},
	{
		Kind:  model.KindResearch,
		Path:  "/program_add",
		Title: "Add Scientific Research",
		Fields: []view.Field{
			text("scientific_output", "Scientific output"),
			text("authors_names", "Authors"),
			text("publisher", "Publisher"),
			text("agency", "Agency"),
			number("year", "Year"),
			choice("research_type", "Research type", "Journal", "Conference", "Book", "Other"),
		},
	},
}
