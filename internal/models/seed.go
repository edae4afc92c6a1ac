package models

// DefaultConfigID is the identifier of the built-in configuration.
const DefaultConfigID = "1"

// NewSessionTitle is the title given to configurations created from the dashboard.
const NewSessionTitle = "NEW STRATEGY SESSION"

// DefaultFormFields returns the registration form of the built-in configuration.
func DefaultFormFields() []FormField {
	return []FormField{
		{ID: "fullName", Label: "Full Name", Type: FieldText, Placeholder: "Jane Cooper", Required: true},
		{ID: "title", Label: "Job Title", Type: FieldText, Placeholder: "Chief Operating Officer", Required: true},
		{ID: "email", Label: "Business Email", Type: FieldEmail, Placeholder: "jane@company.com", Required: true},
		{ID: "phone", Label: "Phone Number", Type: FieldTel, Placeholder: "+1 (555) 000-0000", Required: true},
	}
}

// Seed returns the collection used when nothing valid is persisted.
func Seed() []WebinarConfig {
	return []WebinarConfig{
		{
			ID:               DefaultConfigID,
			TopLabel:         "LIVE EXECUTIVE STRATEGY SESSION",
			Title:            "COMMUNICATION THAT <span style='color: #007bff'>BUILDS TRUST</span>: LEVERAGING THE UNWRITTEN PROTOCOLS",
			TitleFontSize:    72,
			Subtitle:         "Join us for 60 minutes to master the protocols of elite leadership: how to manage silence, navigate 'around the back' power dynamics, and build unshakeable trust",
			SubtitleFontSize: 20,
			Date:             "THURSDAY, FEBRUARY 6, 2026",
			TimeRange:        "1:00 PM EST (12:00 PM CST)",
			Duration:         "60 Minutes",
			FormatType:       "Executive Workshop",
			Registrations:    0,
			CTAText:          "SIGN UP NOW",
			CTAFontSize:      20,
			ZoomLink:         "https://zoom.us/j/meeting-id",
			FormFields:       DefaultFormFields(),
			Speakers: []Speaker{
				{
					Name:       "STEVE MOSS",
					Title:      "President @ Executive Springboard",
					Image:      "https://github.com/john2015richard-lang/Executivespringboard/blob/main/public/images/1658793452064.jpeg",
					Label:      "YOUR HOST",
					BadgeBg:    "#f39c12",
					BadgeColor: "#ffffff",
					Bio:        "Former VP Marketing, Gilbey Canada Inc; Pillsbury. Former VP Strategy & Brand Dev, Heublein Intl; Pillsbury, Former CMO, Pillsbury Intl; Ice Cream Partners/Nestle Ice Cream; Imation. President, Executive Springboard, LLC.",
				},
				{
					Name:       "LUIS MORENO",
					Title:      "Executive Advisor @ Peak Global",
					Image:      "https://github.com/john2015richard-lang/Executivespringboard/blob/main/public/images/guest.png",
					Label:      "SPECIAL GUEST",
					BadgeBg:    "#f39c12",
					BadgeColor: "#ffffff",
					Bio:        "Former VP Marketing, Synchrony. Co-founder and Board Member, Twin Cities Business Peer Network, Advisory Board Member, Argosy University. Marketing Leader, NewPublica. Adjunct Professor, Leadership & Management, University of Minnesota.",
				},
			},
			LogoImage:  "https://github.com/john2015richard-lang/Executivespringboard/blob/main/public/images/header-logo.webp",
			LogoHeight: 56,
			ThemeColor: "#007bff",
			IsActive:   true,
			Attendees:  []Registration{},
		},
	}
}

// NewSessionTemplate returns the template for a configuration added from the dashboard:
// base's content with a fresh title and the minimal two-field form.
func NewSessionTemplate(base WebinarConfig) WebinarConfig {
	t := base.Clone()
	t.Title = NewSessionTitle
	t.FormFields = []FormField{
		{ID: "fullName", Label: "Full Name", Type: FieldText, Placeholder: "Jane Cooper", Required: true},
		{ID: "email", Label: "Business Email", Type: FieldEmail, Placeholder: "jane@company.com", Required: true},
	}
	return t
}
