package model

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Level       Level    `json:"level"`
	Duration    string   `json:"duration"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Instructor  string   `json:"instructor"`
	Rating      float64  `json:"rating"`
	Students    int      `json:"students"`
}

// CourseDetail is a course together with its weekly curriculum.
type CourseDetail struct {
	Course
	Curriculum []Lesson `json:"curriculum"`
}
