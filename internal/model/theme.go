package model

type Theme string

const (
	ThemeSlate Theme = "slate"
	ThemeTeal  Theme = "teal"
	ThemeRose  Theme = "rose"

	DefaultTheme = ThemeSlate
)

type ThemeTokens struct {
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
	Background string `json:"background"`
}

var themeTokens = map[Theme]ThemeTokens{
	ThemeSlate: {Accent: "#334155", Text: "#0f172a", Muted: "#475569", Background: "#f8fafc"},
	ThemeTeal:  {Accent: "#0f766e", Text: "#062925", Muted: "#0f766e", Background: "#ecfeff"},
	ThemeRose:  {Accent: "#be123c", Text: "#3f0a1a", Muted: "#be123c", Background: "#fff1f2"},
}

// Themes lists the accepted theme names in display order.
func Themes() []Theme { return []Theme{ThemeSlate, ThemeTeal, ThemeRose} }

func (t Theme) Valid() bool {
	_, ok := themeTokens[t]
	return ok
}

// Tokens returns the palette for t, or the default palette for an unknown theme.
func (t Theme) Tokens() ThemeTokens {
	if tok, ok := themeTokens[t]; ok {
		return tok
	}
	return themeTokens[DefaultTheme]
}
