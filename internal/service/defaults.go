package service

// 首次启动或槽位损坏时使用的内置数据

const (
	defaultVideoID    = "dQw4w9WgXcQ"
	defaultVideoThumb = "bg-blue-100"
	defaultCategory   = "General"
	defaultPostTag    = "General"
)

func defaultVideos() []Video {
	return []Video{
		{ID: 1, Title: "10-Minute Morning Yoga", Duration: "10:00", Thumb: "bg-orange-100", VideoID: "v7AYKMP6rOE"},
		{ID: 2, Title: "Desk Stretches for Students", Duration: "7:30", Thumb: "bg-green-100", VideoID: "tAUf7aajBWE"},
		{ID: 3, Title: "Guided Breathing for Exam Stress", Duration: "5:00", Thumb: "bg-blue-100", VideoID: "aNXKjGFUlMs"},
	}
}

func defaultMeals() []Meal {
	return []Meal{
		{ID: 1, Type: MealVeg, Title: "Oats with Berries", Cal: 320, Tags: []string{"Breakfast", "Fiber"}},
		{ID: 2, Type: MealNonVeg, Title: "Grilled Chicken Wrap", Cal: 450, Tags: []string{"Lunch", "Protein"}},
		{ID: 3, Type: MealBoost, Title: "Banana Peanut Smoothie", Cal: 210, Tags: []string{"Snack", "Energy"}},
	}
}

func defaultEvents() []Event {
	return []Event{
		{
			ID:          1,
			Title:       "Mindfulness Monday",
			Category:    "Mental Health",
			StartDate:   "2026-10-19",
			Time:        "5:00 PM",
			Location:    "Student Center, Room 204",
			Description: "A guided group meditation session to start the week.",
		},
		{
			ID:          2,
			Title:       "Campus 5K Fun Run",
			Category:    "Fitness",
			StartDate:   "2026-10-24",
			Time:        "7:30 AM",
			Location:    "North Track",
			Description: "Walk, jog or run. Water and snacks provided.",
		},
		{
			ID:          3,
			Title:       "Healthy Cooking Workshop",
			Category:    "Nutrition",
			StartDate:   "2026-11-02",
			EndDate:     "2026-11-04",
			Time:        "6:00 PM",
			Location:    "Dining Hall Kitchen",
			Description: "Three evenings of budget-friendly recipes.",
		},
	}
}

func defaultPosts() []CommunityPost {
	return []CommunityPost{
		{ID: 1, Tag: "Motivation", Text: "Finished my first week of morning runs!", Likes: 24, Comments: 5},
		{ID: 2, Tag: "Support", Text: "Finals are stressful. Anyone up for a study-break walk?", Likes: 12, Comments: 8},
	}
}

func defaultResources() []Resource {
	return []Resource{
		{
			ID:      1,
			Title:   "Sleep Hygiene Guide",
			Type:    ResourceGuide,
			Content: "# Sleep Hygiene\n\n- Keep a consistent bedtime\n- Avoid screens 30 minutes before sleep\n- Limit caffeine after 2 PM",
		},
		{
			ID:      2,
			Title:   "7-Day Hydration Plan",
			Type:    ResourcePlan,
			Content: "Day 1-2: 6 glasses\nDay 3-5: 7 glasses\nDay 6-7: 8 glasses",
		},
	}
}
