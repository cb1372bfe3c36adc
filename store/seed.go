package store

import "civicsync/models"

func reported(date string) models.TimelineEntry {
	return models.TimelineEntry{Status: models.Pending, Date: date, Description: issueReported}
}

func updated(status models.IssueStatus, date string) models.TimelineEntry {
	return models.TimelineEntry{Status: status, Date: date, Description: statusUpdatedPrefix + string(status)}
}

// SeedIssues returns the demo collection, oldest id first.
func SeedIssues() []models.Issue {
	return []models.Issue{
		{
			ID:          "CIV001",
			Title:       "Large pothole on Main Street",
			Description: "A deep pothole near the bus stop is damaging vehicles and forcing cyclists into traffic.",
			Category:    models.Road,
			Location:    "Main Street, near City Mall",
			Status:      models.Pending,
			Date:        "2024-01-15",
			Image:       "https://picsum.photos/seed/civ001/800/600",
			Timeline:    []models.TimelineEntry{reported("2024-01-15")},
		},
		{
			ID:          "CIV002",
			Title:       "Overflowing garbage bin",
			Description: "The public bin has not been emptied for a week and waste is spilling onto the footpath.",
			Category:    models.Garbage,
			Location:    "Park Avenue, Sector 4",
			Status:      models.InProgress,
			Date:        "2024-01-14",
			Image:       "https://picsum.photos/seed/civ002/800/600",
			Timeline: []models.TimelineEntry{
				reported("2024-01-14"),
				updated(models.InProgress, "2024-01-15"),
			},
		},
		{
			ID:          "CIV003",
			Title:       "Water pipe leakage",
			Description: "Clean water has been leaking from a broken pipe for three days.",
			Category:    models.Water,
			Location:    "Oak Street, Block B",
			Status:      models.Resolved,
			Date:        "2024-01-10",
			Image:       "https://picsum.photos/seed/civ003/800/600",
			Timeline: []models.TimelineEntry{
				reported("2024-01-10"),
				updated(models.InProgress, "2024-01-11"),
				updated(models.Resolved, "2024-01-13"),
			},
		},
		{
			ID:          "CIV004",
			Title:       "Street light not working",
			Description: "Three consecutive street lights are out, leaving the lane dark at night.",
			Category:    models.Electricity,
			Location:    "Elm Road, near Community Hall",
			Status:      models.Pending,
			Date:        "2024-01-16",
			Image:       "https://picsum.photos/seed/civ004/800/600",
			Timeline:    []models.TimelineEntry{reported("2024-01-16")},
		},
		{
			ID:          "CIV005",
			Title:       "Broken road divider",
			Description: "The concrete divider was hit by a truck and debris is lying across the lane.",
			Category:    models.Road,
			Location:    "Highway 21, Exit 3",
			Status:      models.InProgress,
			Date:        "2024-01-12",
			Image:       "https://picsum.photos/seed/civ005/800/600",
			Timeline: []models.TimelineEntry{
				reported("2024-01-12"),
				updated(models.InProgress, "2024-01-14"),
			},
		},
		{
			ID:          "CIV006",
			Title:       "Illegal dumping near river",
			Description: "Construction waste has been dumped along the riverbank.",
			Category:    models.Garbage,
			Location:    "Riverside Walk",
			Status:      models.Resolved,
			Date:        "2024-01-08",
			Image:       "https://picsum.photos/seed/civ006/800/600",
			Timeline: []models.TimelineEntry{
				reported("2024-01-08"),
				updated(models.InProgress, "2024-01-09"),
				updated(models.Resolved, "2024-01-11"),
			},
		},
		{
			ID:          "CIV007",
			Title:       "Low water pressure",
			Description: "Residents on the upper floors receive almost no water in the mornings.",
			Category:    models.Water,
			Location:    "Maple Apartments, Cedar Lane",
			Status:      models.Pending,
			Date:        "2024-01-17",
			Image:       "https://picsum.photos/seed/civ007/800/600",
			Timeline:    []models.TimelineEntry{reported("2024-01-17")},
		},
		{
			ID:          "CIV008",
			Title:       "Exposed electrical wires",
			Description: "Live wires are hanging from a damaged junction box next to the playground.",
			Category:    models.Electricity,
			Location:    "Central Park, east gate",
			Status:      models.InProgress,
			Date:        "2024-01-13",
			Image:       "https://picsum.photos/seed/civ008/800/600",
			Timeline: []models.TimelineEntry{
				reported("2024-01-13"),
				updated(models.InProgress, "2024-01-13"),
			},
		},
	}
}

// SeedUsers returns the demo accounts with plaintext passwords.
func SeedUsers() []models.DemoUser {
	return []models.DemoUser{
		{Email: "citizen@demo.com", Password: "password123", Type: models.Citizen, Name: "Demo Citizen"},
		{Email: "admin@demo.com", Password: "admin123", Type: models.Admin, Name: "Demo Admin"},
	}
}
