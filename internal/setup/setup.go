// Package setup builds the enabled handler modules from configuration.
package setup

import (
	"context"

	log "log/slog"

	"google.golang.org/api/option"

	"aria/internal/config"
	"aria/internal/modules"
	"aria/internal/modules/gcal"
	"aria/internal/modules/gmailbox"
	"aria/internal/modules/googleauth"
	"aria/internal/modules/system"
	"aria/internal/modules/weather"
	"aria/internal/proxy"
)

// Modules constructs every module enabled in cfg. A module that fails
// to initialize is logged and skipped so one bad credential does not
// take the whole assistant down.
func Modules(ctx context.Context, cfg *config.Config) []modules.Module {
	var mods []modules.Module

	if cfg.ModuleEnabled("system") {
		mods = append(mods, system.New())
	}

	if cfg.ModuleEnabled("weather") {
		httpClient, err := proxy.NewClient(cfg.SocksProxy, cfg.RequestTimeout)
		if err != nil {
			log.Error("Failed to build weather http client", "err", err)
		} else if m, err := weather.New(httpClient, cfg.WeatherKey, cfg.WeatherBaseURL); err != nil {
			log.Warn("Weather module disabled", "err", err)
		} else {
			mods = append(mods, m)
		}
	}

	wantMail := cfg.ModuleEnabled("gmail")
	wantCal := cfg.ModuleEnabled("calendar")
	if wantMail || wantCal {
		var scopes []string
		if wantMail {
			scopes = append(scopes, googleauth.ScopeMail)
		}
		if wantCal {
			scopes = append(scopes, googleauth.ScopeCalendarEvents)
		}

		authed, err := googleauth.Client(ctx, cfg.GoogleClientSecret, cfg.GoogleToken, scopes...)
		if err != nil {
			log.Warn("Google modules disabled", "err", err)
		} else {
			if wantMail {
				if m, err := gmailbox.New(ctx, option.WithHTTPClient(authed)); err != nil {
					log.Warn("Mail module disabled", "err", err)
				} else {
					mods = append(mods, m)
				}
			}
			if wantCal {
				if m, err := gcal.New(ctx, cfg.Location(), option.WithHTTPClient(authed)); err != nil {
					log.Warn("Calendar module disabled", "err", err)
				} else {
					mods = append(mods, m)
				}
			}
		}
	}

	for _, m := range mods {
		log.Info("Module loaded", "module", m.Name(), "actions", len(m.Actions()))
	}
	return mods
}
