package weather

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var unitSymbols = map[string]string{
	"metric":   "°C",
	"imperial": "°F",
	"standard": "K",
}

var aqiLabels = map[int]string{
	1: "Good",
	2: "Fair",
	3: "Moderate",
	4: "Poor",
	5: "Very Poor",
}

type currentResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Rain struct {
		OneH *float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneH *float64 `json:"1h"`
	} `json:"snow"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Timezone int64 `json:"timezone"`
}

type forecastResponse struct {
	List []struct {
		Dt      int64 `json:"dt"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
	City struct {
		Timezone int64 `json:"timezone"`
	} `json:"city"`
}

type pollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components map[string]float64 `json:"components"`
	} `json:"list"`
}

func formatCurrent(r currentResponse, p place, units string) string {
	if len(r.Weather) == 0 {
		return "Sorry, I couldn't retrieve the weather data."
	}
	unit := unitSymbols[units]

	var b strings.Builder
	fmt.Fprintf(&b, "Weather Report for %s, %s\n", p.City, p.Country)
	fmt.Fprintf(&b, "- Condition: %s\n", capitalize(r.Weather[0].Description))
	fmt.Fprintf(&b, "- Temperature: %.1f%s (feels like %.1f%s)\n", r.Main.Temp, unit, r.Main.FeelsLike, unit)
	if r.Main.Humidity > 0 {
		fmt.Fprintf(&b, "- Humidity: %d%%\n", r.Main.Humidity)
	}
	if r.Main.Pressure > 0 {
		fmt.Fprintf(&b, "- Pressure: %d hPa\n", r.Main.Pressure)
	}
	if r.Wind.Speed > 0 {
		fmt.Fprintf(&b, "- Wind: %.1f m/s", r.Wind.Speed)
		if r.Wind.Deg > 0 {
			fmt.Fprintf(&b, " from %d°", r.Wind.Deg)
		}
		b.WriteByte('\n')
	}
	if r.Clouds.All != nil {
		fmt.Fprintf(&b, "- Cloudiness: %d%%\n", *r.Clouds.All)
	}
	if r.Rain.OneH != nil {
		fmt.Fprintf(&b, "- Rain (last 1h): %.1f mm\n", *r.Rain.OneH)
	}
	if r.Snow.OneH != nil {
		fmt.Fprintf(&b, "- Snow (last 1h): %.1f mm\n", *r.Snow.OneH)
	}
	if r.Sys.Sunrise > 0 && r.Sys.Sunset > 0 {
		fmt.Fprintf(&b, "- Sunrise: %s | Sunset: %s\n",
			localClock(r.Sys.Sunrise, r.Timezone), localClock(r.Sys.Sunset, r.Timezone))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatForecast(r forecastResponse, p place, units string) string {
	if len(r.List) == 0 {
		return "Sorry, I couldn't retrieve the forecast data."
	}
	unit := unitSymbols[units]

	var b strings.Builder
	fmt.Fprintf(&b, "5-Day Weather Forecast for %s, %s:\n", p.City, p.Country)
	for _, item := range r.List {
		desc := "No description"
		if len(item.Weather) > 0 {
			desc = capitalize(item.Weather[0].Description)
		}
		fmt.Fprintf(&b, "- [%s] %s, %.1f%s\n",
			localStamp(item.Dt, r.City.Timezone), desc, item.Main.Temp, unit)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPollution(r pollutionResponse, p place) string {
	if len(r.List) == 0 {
		return "Sorry, I couldn't retrieve the air pollution data."
	}
	data := r.List[0]
	label, ok := aqiLabels[data.Main.AQI]
	if !ok {
		label = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Air Quality Report in %s, %s:\n- AQI: %d (%s)", p.City, p.Country, data.Main.AQI, label)

	keys := make([]string, 0, len(data.Components))
	for k := range data.Components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n- %s: %g µg/m³", strings.ToUpper(k), data.Components[k])
	}
	return b.String()
}

// localClock renders a unix timestamp as HH:MM in the station's zone.
func localClock(unix, offset int64) string {
	return time.Unix(unix+offset, 0).UTC().Format("15:04")
}

func localStamp(unix, offset int64) string {
	return time.Unix(unix+offset, 0).UTC().Format("02/01 15:04")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
