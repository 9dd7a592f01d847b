package hourly

var glyphs = map[string]string{
	"01d": "☀️", "01n": "🌙", "02d": "🌤️", "02n": "☁️",
	"03d": "☁️", "03n": "☁️", "04d": "☁️", "04n": "☁️",
	"09d": "🌧️", "09n": "🌧️", "10d": "🌦️", "10n": "🌧️",
	"11d": "⛈️", "11n": "⛈️", "13d": "❄️", "13n": "❄️",
	"50d": "🌫️", "50n": "🌫️",
}

// IconFor maps an OpenWeatherMap condition code to a display glyph.
// Unknown codes map to "".
func IconFor(code string) string {
	return glyphs[code]
}
