package catalog

import (
	"sort"

	"ai-coding-school-go/internal/model"
)

const popularCount = 3

var Features = []model.Feature{
	{
		Title:       "AI 도구 활용 교육",
		Description: "ChatGPT, Claude, GitHub Copilot 등 최신 AI 도구를 실무에 바로 적용할 수 있도록 교육합니다.",
		Icon:        "Brain",
	},
	{
		Title:       "실전 프로젝트 중심",
		Description: "이론보다는 실제 프로젝트를 통해 AI와 함께 코딩하는 방법을 체득합니다.",
		Icon:        "Code",
	},
	{
		Title:       "1:1 멘토링",
		Description: "개인별 맞춤 피드백과 멘토링을 통해 빠른 성장을 지원합니다.",
		Icon:        "Users",
	},
	{
		Title:       "평생 업데이트",
		Description: "새로운 AI 도구와 기술이 나올 때마다 강의 내용을 무료로 업데이트합니다.",
		Icon:        "Zap",
	},
}

var Testimonials = []model.Testimonial{
	{
		ID:      "1",
		Name:    "김학습",
		Role:    "웹 개발자",
		Content: "AI 도구를 활용한 코딩 방법을 배운 후, 개발 생산성이 3배 이상 향상되었습니다. 정말 추천합니다!",
		Avatar:  "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&q=80",
		Rating:  5,
	},
	{
		ID:      "2",
		Name:    "이직장",
		Role:    "스타트업 CTO",
		Content: "AI 도구들을 회사 개발 프로세스에 도입했더니 팀 전체의 효율성이 크게 개선되었어요.",
		Avatar:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&q=80",
		Rating:  5,
	},
	{
		ID:      "3",
		Name:    "박신입",
		Role:    "주니어 개발자",
		Content: "비전공자였지만 AI와 함께 코딩하는 방법을 배워서 빠르게 개발자로 전향할 수 있었습니다.",
		Avatar:  "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=100&q=80",
		Rating:  5,
	},
}

// PopularCourses returns up to three courses with the most students.
func PopularCourses(courses []model.Course) []model.Course {
	sorted := make([]model.Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Students > sorted[j].Students
	})

	if len(sorted) > popularCount {
		sorted = sorted[:popularCount]
	}
	return sorted
}

func Home(courses []model.Course) model.HomeContent {
	return model.HomeContent{
		Features:       Features,
		Testimonials:   Testimonials,
		PopularCourses: PopularCourses(courses),
	}
}
