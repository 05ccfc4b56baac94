package tech

import "time"

// DefaultTechnologies returns the seed collection used on first run and by
// ResetToDefault. The returned slice is freshly allocated on every call so
// callers may mutate it freely.
func DefaultTechnologies() []Technology {
	return []Technology{
		{
			ID:          1,
			Title:       "React Components",
			Description: "Learn the basic React components and their lifecycle",
			Status:      StatusCompleted,
			Deadline:    datePtr(2024, time.March, 15),
			Tags:        []string{"Frontend", "React"},
			CreatedAt:   date(2024, time.January, 15),
			Priority:    0,
		},
		{
			ID:          2,
			Title:       "JSX Syntax",
			Description: "Master JSX syntax and its quirks",
			Status:      StatusInProgress,
			Deadline:    datePtr(2024, time.April, 20),
			Tags:        []string{"Frontend", "JavaScript"},
			CreatedAt:   date(2024, time.February, 1),
			Priority:    1,
		},
		{
			ID:          3,
			Title:       "State Management",
			Description: "Work with component state and manage application data",
			Status:      StatusNotStarted,
			Tags:        []string{"Frontend", "State"},
			CreatedAt:   date(2024, time.February, 15),
			Priority:    0,
		},
		{
			ID:          4,
			Title:       "React Hooks",
			Description: "Use the useState, useEffect, useMemo and other hooks",
			Status:      StatusInProgress,
			Deadline:    datePtr(2024, time.May, 10),
			Tags:        []string{"Frontend", "React"},
			CreatedAt:   date(2024, time.February, 20),
			Priority:    2,
		},
		{
			ID:          5,
			Title:       "React Router v6",
			Description: "Navigation in React applications using React Router",
			Status:      StatusNotStarted,
			Tags:        []string{"Routing", "React"},
			CreatedAt:   date(2024, time.March, 1),
			Priority:    0,
		},
		{
			ID:          6,
			Title:       "Context API",
			Description: "Manage global application state",
			Status:      StatusCompleted,
			Deadline:    datePtr(2024, time.February, 28),
			Tags:        []string{"State", "React"},
			CreatedAt:   date(2024, time.January, 20),
			Priority:    0,
		},
		{
			ID:          7,
			Title:       "Custom Hooks",
			Description: "Build reusable hooks of your own",
			Status:      StatusNotStarted,
			Tags:        []string{"React", "Advanced"},
			CreatedAt:   date(2024, time.March, 5),
			Priority:    1,
		},
		{
			ID:          8,
			Title:       "Performance Optimization",
			Description: "Optimize the performance of React applications",
			Status:      StatusInProgress,
			Deadline:    datePtr(2024, time.June, 15),
			Tags:        []string{"Performance", "React"},
			CreatedAt:   date(2024, time.February, 25),
			Priority:    0,
		},
		{
			ID:          9,
			Title:       "Next.js Framework",
			Description: "Learn the Next.js framework for server-side rendering",
			Status:      StatusNotStarted,
			Tags:        []string{"Framework", "React"},
			CreatedAt:   date(2024, time.March, 10),
			Priority:    0,
		},
		{
			ID:          10,
			Title:       "TypeScript with React",
			Description: "Use TypeScript in React projects",
			Status:      StatusInProgress,
			Deadline:    datePtr(2024, time.May, 30),
			Tags:        []string{"TypeScript", "React"},
			CreatedAt:   date(2024, time.February, 28),
			Priority:    3,
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}
