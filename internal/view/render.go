package view

import (
	"fmt"
	"strings"

	"github.com/skycast/skycast/internal/domain"
)

// Render produces the terminal view for a state snapshot.
func Render(s State) string {
	var b strings.Builder

	if s.Notice != "" {
		b.WriteString(s.Notice)
		b.WriteString("\n\n")
	}

	switch s.Phase {
	case PhaseLoading:
		if s.Report != nil {
			renderReport(&b, s.Report, s.Unit)
			b.WriteString("\nRefreshing...\n")
		} else {
			b.WriteString("Loading weather data...\n")
		}
	case PhaseSuccess:
		renderReport(&b, s.Report, s.Unit)
	case PhaseError:
		fmt.Fprintf(&b, "Error: %s\n", s.Message)
	default:
		b.WriteString("Enter a city or coordinates to get the current weather.\n")
	}

	return b.String()
}

func renderReport(b *strings.Builder, report *domain.WeatherReport, unit Unit) {
	loc := report.Location
	name := loc.Name
	if name == "" {
		name = fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
	}

	cur := report.Current
	icon := ForWeatherCode(cur.WeatherCode)

	fmt.Fprintf(b, "%s\n", name)
	fmt.Fprintf(b, "%s %s\n", icon.Emoji(), cur.Description)
	fmt.Fprintf(b, "Temperature: %d%s (feels like %d%s)\n",
		ConvertTemperature(cur.Temperature, unit), unit.Suffix(),
		ConvertTemperature(cur.ApparentTemperature, unit), unit.Suffix())
	fmt.Fprintf(b, "Humidity: %d%%  Wind: %.1f mph  Precipitation: %.1f mm\n",
		cur.Humidity, cur.WindSpeed, cur.Precipitation)
	if loc.Timezone != "" {
		fmt.Fprintf(b, "Timezone: %s\n", loc.Timezone)
	}
}
