package model

// UserProfile is the profile object persisted under the "userProfile" slot of
// the key-value store. Avatar is a data-URI string, or empty when unset.
type UserProfile struct {
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Phone            string   `json:"phone"`
	Location         string   `json:"location"`
	Bio              string   `json:"bio"`
	Department       string   `json:"department"`
	EmployeeID       string   `json:"employeeId"`
	JoinDate         string   `json:"joinDate"`
	DateOfBirth      string   `json:"dateOfBirth"`
	Nationality      string   `json:"nationality"`
	Languages        []string `json:"languages"`
	Education        string   `json:"education"`
	Certifications   []string `json:"certifications"`
	EmergencyContact string   `json:"emergencyContact"`
	Timezone         string   `json:"timezone"`
	WorkHours        string   `json:"workHours"`
	Avatar           string   `json:"avatar,omitempty"`
}

// DefaultProfile is the profile seeded on first run, before the user edits
// anything in the settings page.
func DefaultProfile() UserProfile {
	return UserProfile{
		FirstName:   "Rajveer",
		LastName:    "Singh",
		Email:       "RockfallPrediction@gmail.com",
		Role:        "Mine Engineer",
		Company:     "GeoTech Mining Solutions",
		Phone:       "+1 (555) 123-4567",
		Location:    "Vancouver, Canada",
		Bio:         "Experienced mining engineer specializing in rockfall prediction and geological risk assessment.",
		Department:  "Safety & Engineering",
		EmployeeID:  "ENG-2024-001",
		JoinDate:    "2024-01-15",
		DateOfBirth: "1985-06-15",
		Nationality: "Canadian",
		Languages:   []string{"English", "French"},
		Education:   "Mining Engineering, University of British Columbia",
		Certifications: []string{
			"Professional Engineer (P.Eng)",
			"Mine Safety Certification",
		},
		EmergencyContact: "Sarah Singh - +1 (555) 987-6543",
		Timezone:         "PST",
		WorkHours:        "08:00-17:00",
	}
}
