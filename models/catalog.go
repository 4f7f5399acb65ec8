package models

// StepConfig describes one wizard step for display.
type StepConfig struct {
	ID    StepID `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ServiceOption is a bookable service.
type ServiceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SensoryOption is one checklist entry of the sensory step.
type SensoryOption struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	CategoryID string `json:"categoryId"`
}

// SensoryCategory groups sensory options.
type SensoryCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Catalog is everything a client needs to render the wizard.
type Catalog struct {
	Steps             []StepConfig      `json:"steps"`
	Services          []ServiceOption   `json:"services"`
	SensoryOptions    []SensoryOption   `json:"sensoryOptions"`
	SensoryCategories []SensoryCategory `json:"sensoryCategories"`
	ContactMethods    []ContactMethod   `json:"contactMethods"`
}

var Steps = []StepConfig{
	{ID: StepAboutYou, Label: "About You", Icon: "👤"},
	{ID: StepLocation, Label: "Location", Icon: "📍"},
	{ID: StepService, Label: "Service", Icon: "✂️"},
	{ID: StepSensory, Label: "Sensory", Icon: "✨"},
	{ID: StepReview, Label: "Review", Icon: "📋"},
}

var Services = []ServiceOption{
	{Value: "cut", Label: "Cut"},
	{Value: "colour", Label: "Colour"},
	{Value: "styling", Label: "Styling"},
	{Value: "cut-and-colour", Label: "Cut and colour"},
	{Value: "other", Label: "Other (describe in message)"},
}

var SensoryOptions = []SensoryOption{
	{ID: "quiet", Label: "Prefer quiet / minimal chat", CategoryID: "auditory"},
	{ID: "clipperWarning", Label: "Tell me before using clippers or loud tools", CategoryID: "auditory"},
	{ID: "noMusic", Label: "No background music", CategoryID: "auditory"},
	{ID: "noWash", Label: "Prefer dry cut (no wash)", CategoryID: "tactile"},
	{ID: "lightTouch", Label: "Light touch only", CategoryID: "tactile"},
	{ID: "breaks", Label: "Offer breaks during the appointment", CategoryID: "tactile"},
	{ID: "styleMenu", Label: "Show me a style menu or pictures", CategoryID: "visual"},
	{ID: "mirrorOptional", Label: "I prefer not to see myself in the mirror during the appointment", CategoryID: "visual"},
	{ID: "lowScent", Label: "Low or no scent products", CategoryID: "olfactory"},
	{ID: "digitalOnly", Label: "Prefer to book and communicate by text/email only", CategoryID: "social"},
	{ID: "stepByStep", Label: "Tell me each step before you do it", CategoryID: "social"},
	{ID: "companion", Label: "Carer or companion may be present", CategoryID: "social"},
}

var SensoryCategories = []SensoryCategory{
	{ID: "auditory", Title: "Auditory (Sound)", Icon: "👂"},
	{ID: "tactile", Title: "Tactile (Touch)", Icon: "🤲"},
	{ID: "visual", Title: "Visual", Icon: "👁️"},
	{ID: "olfactory", Title: "Olfactory (Smell)", Icon: "🌸"},
	{ID: "social", Title: "Social & Cognitive", Icon: "💬"},
}

// DefaultCatalog returns the wizard catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Steps:             Steps,
		Services:          Services,
		SensoryOptions:    SensoryOptions,
		SensoryCategories: SensoryCategories,
		ContactMethods:    ContactMethods,
	}
}
