// Package weather answers weather, forecast and air quality questions
// through the OpenWeatherMap API.
package weather

import (
	"context"
	"fmt"
	"net/http"

	"aria/internal/modules"
)

const defaultBaseURL = "https://api.openweathermap.org"

type Module struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

func New(client *http.Client, apiKey, baseURL string) (*Module, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("weather: missing api key")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Module{http: client, apiKey: apiKey, baseURL: baseURL}, nil
}

func (c *Module) Name() string { return "weather" }

func (c *Module) Description() string {
	return "provide weather forecasts and air pollution data for any location"
}

func (c *Module) Actions() []modules.Action {
	return []modules.Action{
		{
			Name:        "get_current_weather",
			Description: "Get the current weather for a location given by city name, coordinates or zip code.",
			Example:     `{"action": "get_current_weather", "city": "London", "country_code": "GB", "units": "metric"}`,
			Handler:     c.currentWeather,
		},
		{
			Name:        "get_forecast",
			Description: "Get the 5-day weather forecast in 3-hour steps for a location.",
			Example:     `{"action": "get_forecast", "city": "Paris", "units": "metric"}`,
			Handler:     c.forecast,
		},
		{
			Name:        "get_air_pollution",
			Description: "Get the current air quality index and pollutant concentrations for a location.",
			Example:     `{"action": "get_air_pollution", "city": "Beijing"}`,
			Handler:     c.airPollution,
		},
	}
}

func unitsArg(args modules.Args) string {
	u := args.StringOr("units", "metric")
	if _, ok := unitSymbols[u]; !ok {
		return "metric"
	}
	return u
}

func (c *Module) currentWeather(ctx context.Context, args modules.Args) (string, error) {
	p, err := c.resolve(ctx, args)
	if err != nil {
		return "", err
	}
	units := unitsArg(args)
	params := coordParams(p)
	params.Set("units", units)

	var resp currentResponse
	if err := c.get(ctx, "/data/2.5/weather", params, &resp); err != nil {
		return "", err
	}
	return formatCurrent(resp, p, units), nil
}

func (c *Module) forecast(ctx context.Context, args modules.Args) (string, error) {
	p, err := c.resolve(ctx, args)
	if err != nil {
		return "", err
	}
	units := unitsArg(args)
	params := coordParams(p)
	params.Set("units", units)

	var resp forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", params, &resp); err != nil {
		return "", err
	}
	return formatForecast(resp, p, units), nil
}

func (c *Module) airPollution(ctx context.Context, args modules.Args) (string, error) {
	p, err := c.resolve(ctx, args)
	if err != nil {
		return "", err
	}
	var resp pollutionResponse
	if err := c.get(ctx, "/data/2.5/air_pollution", coordParams(p), &resp); err != nil {
		return "", err
	}
	return formatPollution(resp, p), nil
}
