package model

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Testimonial struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Avatar  string `json:"avatar"`
	Rating  int    `json:"rating"`
}

type HomeContent struct {
	Features       []Feature     `json:"features"`
	Testimonials   []Testimonial `json:"testimonials"`
	PopularCourses []Course      `json:"popular_courses"`
}
