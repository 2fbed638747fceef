package view

import "math"

// Unit selects the temperature scale used for display. Reports always carry
// Fahrenheit values; Celsius is derived at render time and never refetched.
type Unit byte

const (
	UnitFahrenheit Unit = 'F'
	UnitCelsius    Unit = 'C'
)

// Suffix returns the symbol appended to rendered temperatures.
func (u Unit) Suffix() string {
	if u == UnitCelsius {
		return "°C"
	}
	return "°F"
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == UnitCelsius {
		return UnitFahrenheit
	}
	return UnitCelsius
}

// ConvertTemperature converts a Fahrenheit reading to the requested unit,
// rounded to the nearest whole degree.
func ConvertTemperature(tempF float64, unit Unit) int {
	if unit == UnitCelsius {
		return int(math.Round((tempF - 32) * 5 / 9))
	}
	return int(math.Round(tempF))
}
