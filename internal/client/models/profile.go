package models

// ActivityLevel values offered during onboarding.
const (
	ActivitySedentary = "SEDENTARY"
	ActivityModerate  = "MODERATE"
	ActivityActive    = "ACTIVE"
)

// DietType values offered during onboarding.
const (
	DietVegetarian = "VEGETARIAN"
	DietVegan      = "VEGAN"
	DietOmnivore   = "OMNIVORE"
)

var (
	ActivityLevels = []string{ActivitySedentary, ActivityModerate, ActivityActive}
	DietTypes      = []string{DietVegetarian, DietVegan, DietOmnivore}
)

// Profile is the full user profile returned by GET /api/profile.
type Profile struct {
	ID                  ID       `json:"id"`
	Email               string   `json:"email"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	DateOfBirth         *Date    `json:"dateOfBirth"`
	Age                 *int     `json:"age"`
	Height              *float64 `json:"height"`
	Weight              *float64 `json:"weight"`
	AverageCycleLength  *int     `json:"averageCycleLength"`
	AveragePeriodLength *int     `json:"averagePeriodLength"`
	LastPeriodStart     *Date    `json:"lastPeriodStart"`
	HealthConditions    []string `json:"healthConditions"`
	ActivityLevel       string   `json:"activityLevel"`
	DietType            string   `json:"dietType"`
	ConsentGiven        *bool    `json:"consentGiven"`
	DataSharingEnabled  *bool    `json:"dataSharingEnabled"`
	AnonymousMode       *bool    `json:"anonymousMode"`
	Role                string   `json:"role,omitempty"`
	EmailVerified       *bool    `json:"emailVerified"`
}

// ProfileUpdate is the partial body of PUT /api/profile. Nil fields are
// omitted and left unchanged by the server.
type ProfileUpdate struct {
	FirstName          *string  `json:"firstName,omitempty"`
	LastName           *string  `json:"lastName,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	AverageCycleLength *int     `json:"averageCycleLength,omitempty"`
}

// OnboardingRequest is the body of POST /api/profile/onboarding. Unset
// fields are sent as null.
type OnboardingRequest struct {
	DateOfBirth         *Date    `json:"dateOfBirth"`
	Height              *float64 `json:"height"`
	Weight              *float64 `json:"weight"`
	AverageCycleLength  *int     `json:"averageCycleLength"`
	AveragePeriodLength *int     `json:"averagePeriodLength"`
	HealthConditions    []string `json:"healthConditions"`
	ActivityLevel       string   `json:"activityLevel"`
	DietType            string   `json:"dietType"`
	ConsentGiven        bool     `json:"consentGiven"`
}
