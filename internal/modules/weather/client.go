package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"aria/internal/modules"
)

// place is a resolved location from the geocoding API.
type place struct {
	Lat     float64
	Lon     float64
	City    string
	Country string
}

func (c *Module) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("weather API status %d: %s", resp.StatusCode, snippet)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}

type geoEntry struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// resolve geocodes the location arguments: lat/lon, zip+country_code, or
// city (+ optional state_code/country_code), in that order of preference.
func (c *Module) resolve(ctx context.Context, args modules.Args) (place, error) {
	switch {
	case args.Has("lat") && args.Has("lon"):
		lat, err := args.Float("lat")
		if err != nil {
			return place{}, err
		}
		lon, err := args.Float("lon")
		if err != nil {
			return place{}, err
		}
		var entries []geoEntry
		params := url.Values{
			"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
			"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
			"limit": {"1"},
		}
		if err := c.get(ctx, "/geo/1.0/reverse", params, &entries); err != nil {
			return place{}, err
		}
		if len(entries) == 0 {
			return place{}, fmt.Errorf("no results found for the given coordinates")
		}
		return place{Lat: lat, Lon: lon, City: entries[0].Name, Country: entries[0].Country}, nil

	case args.Has("zip") && args.Has("country_code"):
		zip, err := args.String("zip")
		if err != nil {
			return place{}, err
		}
		cc, err := args.String("country_code")
		if err != nil {
			return place{}, err
		}
		var entry geoEntry
		params := url.Values{"zip": {zip + "," + cc}}
		if err := c.get(ctx, "/geo/1.0/zip", params, &entry); err != nil {
			return place{}, err
		}
		if entry.Name == "" {
			return place{}, fmt.Errorf("no results found for zip %s,%s", zip, cc)
		}
		return place{Lat: entry.Lat, Lon: entry.Lon, City: entry.Name, Country: entry.Country}, nil

	case args.Has("city"):
		city, err := args.String("city")
		if err != nil {
			return place{}, err
		}
		q := city
		if s := args.StringOr("state_code", ""); s != "" {
			q += "," + s
		}
		if cc := args.StringOr("country_code", ""); cc != "" {
			q += "," + cc
		}
		var entries []geoEntry
		params := url.Values{"q": {q}, "limit": {"1"}}
		if err := c.get(ctx, "/geo/1.0/direct", params, &entries); err != nil {
			return place{}, err
		}
		if len(entries) == 0 {
			return place{}, fmt.Errorf("no results found for city %q", city)
		}
		return place{Lat: entries[0].Lat, Lon: entries[0].Lon, City: entries[0].Name, Country: entries[0].Country}, nil
	}

	return place{}, fmt.Errorf("%w: provide lat/lon, city, or zip + country_code", modules.ErrBadArgs)
}

func coordParams(p place) url.Values {
	return url.Values{
		"lat": {strconv.FormatFloat(p.Lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(p.Lon, 'f', -1, 64)},
	}
}
