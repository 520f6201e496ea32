package knowledge

import (
	"context"

	"github.com/voicerag/campus-assistant-go/internal/storage"
)

// seed fills an empty database with the built-in campus data set.
func (kb *KB) seed(ctx context.Context) error {
	buildings := []*storage.Building{
		{
			ID:       "main_library",
			Name:     "Main Library",
			Location: "Central Campus",
			Hours:    "8:00 AM - 10:00 PM (Monday-Friday), 10:00 AM - 6:00 PM (Weekends)",
			Services: "Book lending, Research assistance, Study rooms, Computer lab",
			Contact:  "library@techuniversity.edu",
		},
		{
			ID:       "science_engineering",
			Name:     "Science & Engineering Building",
			Location: "456 Innovation Dr",
			Hours:    "7:00 AM - 10:00 PM (Monday-Friday), 8:00 AM - 6:00 PM (Weekends)",
			Services: "Computer Labs, Research Labs, Study Rooms",
		},
		{
			ID:       "student_center",
			Name:     "Student Center",
			Location: "789 Campus Blvd",
			Hours:    "6:00 AM - 11:00 PM (Daily)",
			Services: "Cafeteria, Bookstore, Student Lounge, Game Room",
		},
		{
			ID:       "recreation_center",
			Name:     "Recreation Center",
			Location: "West Campus",
			Hours:    "6:00 AM - 11:00 PM (Daily)",
			Services: "Gymnasium, Pool, Fitness classes",
		},
	}
	for _, b := range buildings {
		if err := kb.db.SaveBuilding(ctx, b); err != nil {
			return err
		}
	}

	events := []*storage.Event{
		{
			ID:          "welcome_week_festival",
			Name:        "Welcome Week Festival",
			Date:        "2026-09-07",
			Time:        "12:00 PM - 4:00 PM",
			Location:    "Main Quad",
			Description: "Join us for a week of fun activities to welcome new and returning students!",
		},
		{
			ID:          "career_fair",
			Name:        "Career Fair",
			Date:        "2026-09-14",
			Time:        "10:00 AM - 3:00 PM",
			Location:    "Gymnasium",
			Description: "Meet with top employers and explore internship and job opportunities.",
		},
		{
			ID:          "hackathon",
			Name:        "Hackathon",
			Date:        "2026-09-21",
			Time:        "6:00 PM - 6:00 PM (next day)",
			Location:    "Computer Labs",
			Description: "48-hour coding competition with prizes and networking opportunities.",
		},
	}
	for _, e := range events {
		if err := kb.db.SaveEvent(ctx, e); err != nil {
			return err
		}
	}

	clubs := []*storage.Club{
		{
			ID:          "computer_science_club",
			Name:        "Computer Science Club",
			Category:    "Technology",
			MeetingTime: "Every Thursday, 6:00 PM",
			Location:    "SEB 301",
			Description: "A club for students interested in computer science, programming, and technology.",
			Contact:     "csclub@techuniversity.edu",
		},
		{
			ID:          "photography_club",
			Name:        "Photography Club",
			Category:    "Arts & Media",
			MeetingTime: "Every Tuesday, 5:00 PM",
			Location:    "Arts Building 204",
			Description: "For photography enthusiasts to share their work and learn new techniques.",
			Contact:     "photoclub@techuniversity.edu",
		},
		{
			ID:          "basketball_club",
			Name:        "Basketball Club",
			Category:    "Sports & Recreation",
			MeetingTime: "Every Monday and Wednesday, 7:00 PM",
			Location:    "Gymnasium",
			Description: "Competitive and recreational basketball for all skill levels.",
			Contact:     "basketball@techuniversity.edu",
		},
	}
	for _, c := range clubs {
		if err := kb.db.SaveClub(ctx, c); err != nil {
			return err
		}
	}

	services := []*storage.Service{
		{
			ID:          "library_services",
			Name:        "Library Services",
			Location:    "Main Library",
			Hours:       "8:00 AM - 10:00 PM (Monday-Friday), 10:00 AM - 6:00 PM (Weekends)",
			Description: "Comprehensive library services including book lending, research assistance, and study spaces.",
			Contact:     "library@techuniversity.edu",
		},
		{
			ID:          "health_center",
			Name:        "Health Center",
			Location:    "Health Services Building",
			Hours:       "9:00 AM - 5:00 PM (Monday-Friday)",
			Description: "Medical services and health counseling for students and staff.",
			Contact:     "health@techuniversity.edu",
		},
		{
			ID:          "career_services",
			Name:        "Career Services",
			Location:    "Student Center, Room 205",
			Hours:       "9:00 AM - 5:00 PM (Monday-Friday)",
			Description: "Career counseling, job search assistance, and internship opportunities.",
			Contact:     "careers@techuniversity.edu",
		},
	}
	for _, s := range services {
		if err := kb.db.SaveService(ctx, s); err != nil {
			return err
		}
	}

	faqs := []*storage.FAQ{
		{
			ID:       "wifi",
			Question: "How do I connect to campus wifi?",
			Answer:   "Connect to the CampusNet network and sign in with your student credentials.",
			Category: "it",
		},
		{
			ID:       "parking",
			Question: "Where can I park on campus?",
			Answer:   "Student parking is available in Lots B and C with a valid parking permit. Permits can be purchased at Campus Security.",
			Category: "facilities",
		},
		{
			ID:       "library_hours",
			Question: "What are the library hours?",
			Answer:   "The Main Library is open 8:00 AM - 10:00 PM on weekdays and 10:00 AM - 6:00 PM on weekends.",
			Category: "facilities",
		},
		{
			ID:       "registration",
			Question: "How do I register for courses?",
			Answer:   "Course registration opens through the student portal at the start of each enrollment period. Contact the registrar for holds.",
			Category: "academic",
		},
		{
			ID:       "dining_plans",
			Question: "What dining plans are available?",
			Answer:   "Meal plans range from 10 to 21 meals per week and can be used at the cafeteria in the Student Center.",
			Category: "dining",
		},
		{
			ID:       "gym_access",
			Question: "How do I access the gym?",
			Answer:   "The Recreation Center is free for enrolled students. Bring your student ID to the front desk.",
			Category: "facilities",
		},
	}
	for _, f := range faqs {
		if err := kb.db.SaveFAQ(ctx, f); err != nil {
			return err
		}
	}

	return nil
}
