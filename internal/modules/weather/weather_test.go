package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aria/internal/modules"
)

func testServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test-key" {
			http.Error(w, `{"message":"bad key"}`, http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrentWeatherByCity(t *testing.T) {
	srv := testServer(t, map[string]string{
		"/geo/1.0/direct": `[{"name":"London","lat":51.5,"lon":-0.12,"country":"GB"}]`,
		"/data/2.5/weather": `{
			"weather":[{"description":"light rain"}],
			"main":{"temp":14.2,"feels_like":13.1,"humidity":82,"pressure":1011},
			"wind":{"speed":4.6,"deg":230},
			"clouds":{"all":90},
			"sys":{"sunrise":1756600000,"sunset":1756650000},
			"timezone":3600
		}`,
	})

	mod, err := New(srv.Client(), "test-key", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	out, err := mod.currentWeather(context.Background(), modules.Args{"city": "London", "country_code": "GB"})
	if err != nil {
		t.Fatalf("currentWeather: %v", err)
	}
	for _, want := range []string{"London, GB", "Light rain", "14.2°C", "feels like 13.1°C", "82%", "1011 hPa"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestForecastByCoordinates(t *testing.T) {
	srv := testServer(t, map[string]string{
		"/geo/1.0/reverse": `[{"name":"Oslo","lat":59.91,"lon":10.75,"country":"NO"}]`,
		"/data/2.5/forecast": `{
			"list":[
				{"dt":1756700000,"weather":[{"description":"clear sky"}],"main":{"temp":18.0}},
				{"dt":1756710800,"weather":[{"description":"few clouds"}],"main":{"temp":16.5}}
			],
			"city":{"timezone":7200}
		}`,
	})

	mod, err := New(srv.Client(), "test-key", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	out, err := mod.forecast(context.Background(), modules.Args{"lat": 59.91, "lon": 10.75})
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	for _, want := range []string{"Oslo, NO", "Clear sky", "18.0°C", "Few clouds"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestAirPollution(t *testing.T) {
	srv := testServer(t, map[string]string{
		"/geo/1.0/direct":         `[{"name":"Beijing","lat":39.9,"lon":116.4,"country":"CN"}]`,
		"/data/2.5/air_pollution": `{"list":[{"main":{"aqi":4},"components":{"pm2_5":55.3,"no2":41.0}}]}`,
	})

	mod, err := New(srv.Client(), "test-key", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	out, err := mod.airPollution(context.Background(), modules.Args{"city": "Beijing"})
	if err != nil {
		t.Fatalf("airPollution: %v", err)
	}
	for _, want := range []string{"Beijing, CN", "AQI: 4 (Poor)", "PM2_5: 55.3", "NO2: 41"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestResolveNeedsLocation(t *testing.T) {
	mod, err := New(http.DefaultClient, "test-key", "http://unused")
	if err != nil {
		t.Fatal(err)
	}
	_, err = mod.currentWeather(context.Background(), modules.Args{})
	if !errors.Is(err, modules.ErrBadArgs) {
		t.Fatalf("expected ErrBadArgs, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(nil, "", ""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestUnitsFallback(t *testing.T) {
	if got := unitsArg(modules.Args{"units": "kelvinish"}); got != "metric" {
		t.Fatalf("got %q, want metric", got)
	}
	if got := unitsArg(modules.Args{"units": "imperial"}); got != "imperial" {
		t.Fatalf("got %q, want imperial", got)
	}
}
