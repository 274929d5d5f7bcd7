package domain

// StyleSettings holds the look of the exported page. Values are free-form
// CSS-ish strings; no validation is performed beyond escaping at the
// point they are interpolated into the generated document.
type StyleSettings struct {
	FontFamily          string `yaml:"fontFamily" json:"fontFamily"`
	PrimaryColor        string `yaml:"primaryColor" json:"primaryColor"`
	BackgroundColor     string `yaml:"backgroundColor" json:"backgroundColor"`
	TextColor           string `yaml:"textColor" json:"textColor"`
	CardBackgroundColor string `yaml:"cardBackgroundColor" json:"cardBackgroundColor"`
	HeadingColor        string `yaml:"headingColor" json:"headingColor"`
}

// DefaultStyles returns the styles used when no style file exists or it
// fails to parse.
func DefaultStyles() StyleSettings {
	return StyleSettings{
		FontFamily:          "Nunito",
		PrimaryColor:        "#c026d3",
		BackgroundColor:     "#f9fafb",
		TextColor:           "#1f2937",
		CardBackgroundColor: "#ffffff",
		HeadingColor:        "#111827",
	}
}

// Merged fills any blank field from the defaults, so a partially filled
// style file still produces a usable document.
func (s StyleSettings) Merged() StyleSettings {
	def := DefaultStyles()
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	if s.PrimaryColor == "" {
		s.PrimaryColor = def.PrimaryColor
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = def.BackgroundColor
	}
	if s.TextColor == "" {
		s.TextColor = def.TextColor
	}
	if s.CardBackgroundColor == "" {
		s.CardBackgroundColor = def.CardBackgroundColor
	}
	if s.HeadingColor == "" {
		s.HeadingColor = def.HeadingColor
	}
	return s
}
