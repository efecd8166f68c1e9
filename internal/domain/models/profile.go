package models

type Skill struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon,omitempty"`
}

type SkillCategory struct {
	Category string  `yaml:"category" json:"category"`
	Skills   []Skill `yaml:"skills" json:"skills"`
}

type Experience struct {
	ID            string   `yaml:"id" json:"id"`
	Company       string   `yaml:"company" json:"company"`
	Role          string   `yaml:"role" json:"role"`
	StartDate     string   `yaml:"start_date" json:"start_date"`
	EndDate       string   `yaml:"end_date" json:"end_date,omitempty"`
	Location      string   `yaml:"location" json:"location,omitempty"`
	Introduction  string   `yaml:"introduction" json:"introduction,omitempty"`
	Contributions []string `yaml:"contributions" json:"contributions"`
	Technologies  []string `yaml:"technologies" json:"technologies"`
	LogoURL       string   `yaml:"logo_url" json:"logo_url,omitempty"`
}

type Education struct {
	ID           string `yaml:"id" json:"id"`
	Institution  string `yaml:"institution" json:"institution"`
	Degree       string `yaml:"degree" json:"degree"`
	FieldOfStudy string `yaml:"field_of_study" json:"field_of_study,omitempty"`
	StartDate    string `yaml:"start_date" json:"start_date"`
	EndDate      string `yaml:"end_date" json:"end_date,omitempty"`
	Location     string `yaml:"location" json:"location,omitempty"`
	Description  string `yaml:"description" json:"description,omitempty"`
	LogoURL      string `yaml:"logo_url" json:"logo_url,omitempty"`
}

type Activity struct {
	ID      string `yaml:"id" json:"id"`
	Date    string `yaml:"date" json:"date"`
	Title   string `yaml:"title" json:"title"`
	Details string `yaml:"details" json:"details,omitempty"`
}

// Profile is the landing page document.
type Profile struct {
	Name       string          `yaml:"name" json:"name"`
	Headline   string          `yaml:"headline" json:"headline"`
	Bio        string          `yaml:"bio" json:"bio"`
	Email      string          `yaml:"email" json:"email,omitempty"`
	GithubURL  string          `yaml:"github_url" json:"github_url,omitempty"`
	Skills     []SkillCategory `yaml:"skills" json:"skills"`
	Experience []Experience    `yaml:"experience" json:"experience"`
	Education  []Education     `yaml:"education" json:"education"`
	Activities []Activity      `yaml:"activities" json:"activities"`
}
