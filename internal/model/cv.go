package model

// Go models for a CV document as it is stored and served. The JSON shape
// is the persisted layout, one document per slug.

type Links struct {
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
	Website  string `json:"website" yaml:"website"`
}

type Profile struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Role     string `json:"role" yaml:"role"`
	Location string `json:"location" yaml:"location"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	About    string `json:"about" yaml:"about"`
	Links    Links  `json:"links" yaml:"links"`
	// Photo is an embedded image, usually a data URI.
	Photo string `json:"photo,omitempty" yaml:"photo,omitempty"`
}

type Experience struct {
	Company string   `json:"company" yaml:"company"`
	Role    string   `json:"role" yaml:"role"`
	Start   string   `json:"start" yaml:"start"`
	End     string   `json:"end" yaml:"end"`
	Bullets []string `json:"bullets" yaml:"bullets"`
}

type Education struct {
	School  string `json:"school" yaml:"school"`
	Degree  string `json:"degree" yaml:"degree"`
	Start   string `json:"start" yaml:"start"`
	End     string `json:"end" yaml:"end"`
	Details string `json:"details" yaml:"details"`
}

type Project struct {
	Name        string   `json:"name" yaml:"name"`
	Link        string   `json:"link" yaml:"link"`
	Description string   `json:"description" yaml:"description"`
	Highlights  []string `json:"highlights" yaml:"highlights"`
	Tech        []string `json:"tech" yaml:"tech"`
}

type CV struct {
	Profile        Profile      `json:"profile" yaml:"profile"`
	Experience     []Experience `json:"experience" yaml:"experience"`
	Education      []Education  `json:"education" yaml:"education"`
	Projects       []Project    `json:"projects" yaml:"projects"`
	Skills         []string     `json:"skills" yaml:"skills"`
	Languages      []string     `json:"languages" yaml:"languages"`
	Certifications []string     `json:"certifications" yaml:"certifications"`
	Theme          Theme        `json:"theme" yaml:"theme"`
	AccentColor    string       `json:"accentColor,omitempty" yaml:"accentColor,omitempty"`
}

// DefaultCV is the blank document a new editing session starts from.
// Profile scalars missing from untrusted input fall back to these values.
func DefaultCV() CV {
	return CV{
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Skills:         []string{},
		Languages:      []string{},
		Certifications: []string{},
		Theme:          DefaultTheme,
	}
}

// Accent returns the accent override when present, otherwise the theme accent.
func (c CV) Accent() string {
	if c.AccentColor != "" {
		return c.AccentColor
	}
	return c.Theme.Tokens().Accent
}
