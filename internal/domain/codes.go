package domain

// UnknownConditions is the description for any weather code missing from the
// table.
const UnknownConditions = "Unknown"

// weatherCodeDescriptions maps WMO weather codes to display text. Exact match
// only: codes falling between listed values (such as 67 or 77) are not
// described. The table is immutable and loaded once at process start.
var weatherCodeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeWeatherCode resolves a WMO weather code to its display text
func DescribeWeatherCode(code int) string {
	if description, ok := weatherCodeDescriptions[code]; ok {
		return description
	}
	return UnknownConditions
}
