package domain

// ResolvedLocation identifies the place a weather report describes.
// Coordinates are JSON numbers on the wire, never strings. Name is the
// assembled display name and is only set on city lookups.
type ResolvedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
	Name      string  `json:"name,omitempty"`
}

// CurrentConditions holds normalized current weather for a location.
// Temperatures are Fahrenheit, wind speed is mph, precipitation is
// millimeters; clients convert for display only.
type CurrentConditions struct {
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	Humidity            int     `json:"humidity"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weatherCode"`
	WindSpeed           float64 `json:"windSpeed"`
	Description         string  `json:"description"`
}

// WeatherReport pairs a resolved location with its current conditions
type WeatherReport struct {
	Location ResolvedLocation  `json:"location"`
	Current  CurrentConditions `json:"currentWeather"`
}

// WeatherResponse is the success envelope returned to API clients
type WeatherResponse struct {
	Success        bool              `json:"success"`
	Location       ResolvedLocation  `json:"location"`
	CurrentWeather CurrentConditions `json:"currentWeather"`
}

// ErrorResponse is the error envelope returned to API clients
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse reports gateway liveness
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
