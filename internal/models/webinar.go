package models

// Form field input kinds.
const (
	FieldText  = "text"
	FieldEmail = "email"
	FieldTel   = "tel"
)

// Speaker is the display profile of the host or the guest.
type Speaker struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Image      string `json:"image"`
	Label      string `json:"label"` // badge text, e.g. "YOUR HOST"
	Bio        string `json:"bio,omitempty"`
	BadgeBg    string `json:"badgeBg,omitempty"`
	BadgeColor string `json:"badgeColor,omitempty"`
}

// FormField is one input of the registration form (admin-defined).
type FormField struct {
	ID          string `json:"id" validate:"required"` // key in Registration.FormData
	Label       string `json:"label"`
	Type        string `json:"type" validate:"oneof=text email tel"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
}

// WebinarConfig is one editable landing page: content, branding, form and captured attendees.
// Speakers[0] is the host, Speakers[1] the guest.
type WebinarConfig struct {
	ID               string         `json:"id" validate:"required"`
	TopLabel         string         `json:"topLabel"`
	Title            string         `json:"title"` // may contain inline markup
	TitleFontSize    float64        `json:"titleFontSize"`
	Subtitle         string         `json:"subtitle"`
	SubtitleFontSize float64        `json:"subtitleFontSize"`
	Date             string         `json:"date"`
	TimeRange        string         `json:"timeRange"`
	Duration         string         `json:"duration"`
	FormatType       string         `json:"formatType"`
	Registrations    int            `json:"registrations" validate:"gte=0"` // advisory when edited directly
	CTAText          string         `json:"ctaText"`
	CTALink          string         `json:"ctaLink,omitempty"`
	CTAFontSize      float64        `json:"ctaFontSize"`
	Speakers         []Speaker      `json:"speakers" validate:"len=2"`
	LogoImage        string         `json:"logoImage"`
	LogoHeight       float64        `json:"logoHeight"`
	ThemeColor       string         `json:"themeColor"`
	IsActive         bool           `json:"isActive"`
	ZoomLink         string         `json:"zoomLink,omitempty"`
	FormFields       []FormField    `json:"formFields" validate:"min=1,unique=ID,dive"`
	Attendees        []Registration `json:"attendees"`
}

// Host returns the first speaker.
func (w *WebinarConfig) Host() Speaker {
	if len(w.Speakers) > 0 {
		return w.Speakers[0]
	}
	return Speaker{}
}

// Guest returns the second speaker.
func (w *WebinarConfig) Guest() Speaker {
	if len(w.Speakers) > 1 {
		return w.Speakers[1]
	}
	return Speaker{}
}

// Clone returns a deep copy of the configuration.
func (w WebinarConfig) Clone() WebinarConfig {
	out := w
	if w.Speakers != nil {
		out.Speakers = append([]Speaker(nil), w.Speakers...)
	}
	if w.FormFields != nil {
		out.FormFields = append([]FormField(nil), w.FormFields...)
	}
	if w.Attendees != nil {
		out.Attendees = make([]Registration, len(w.Attendees))
		for i, a := range w.Attendees {
			out.Attendees[i] = a.Clone()
		}
	}
	return out
}
