package view

// Icon is the pictogram shown next to the current conditions.
type Icon int

const (
	IconDefault Icon = iota
	IconClear
	IconPartlyCloudy
	IconOvercast
	IconFog
	IconRain
	IconSnow
	IconStorm
)

// String returns the icon's stable identifier.
func (i Icon) String() string {
	switch i {
	case IconClear:
		return "clear"
	case IconPartlyCloudy:
		return "partly-cloudy"
	case IconOvercast:
		return "overcast"
	case IconFog:
		return "fog"
	case IconRain:
		return "rain"
	case IconSnow:
		return "snow"
	case IconStorm:
		return "storm"
	default:
		return "default"
	}
}

// Emoji returns the terminal glyph for the icon.
func (i Icon) Emoji() string {
	switch i {
	case IconClear:
		return "☀️"
	case IconPartlyCloudy:
		return "⛅"
	case IconOvercast:
		return "☁️"
	case IconFog:
		return "🌫️"
	case IconRain:
		return "🌧️"
	case IconSnow:
		return "🌨️"
	case IconStorm:
		return "⛈️"
	default:
		return "🌡️"
	}
}

// ForWeatherCode maps a WMO weather code onto an icon using coarse bands.
// The bands do not always agree with the description table: 67 draws rain
// despite an unknown description, and 80-82 fall in the snow band.
func ForWeatherCode(code int) Icon {
	switch {
	case code == 0 || code == 1:
		return IconClear
	case code == 2:
		return IconPartlyCloudy
	case code == 3:
		return IconOvercast
	case code == 45 || code == 48:
		return IconFog
	case code >= 51 && code <= 67:
		return IconRain
	case code >= 71 && code <= 86:
		return IconSnow
	case code >= 95 && code <= 99:
		return IconStorm
	default:
		return IconDefault
	}
}
