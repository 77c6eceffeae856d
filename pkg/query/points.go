package query

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/normalise"
)

// MinAutocompleteLength is the shortest query the provider is asked about;
// anything shorter fails validation locally.
const MinAutocompleteLength = 2

// Autocomplete searches points by partial name. A newer call supersedes any
// in-flight one for the same client, so a slow response for an old keystroke
// can never overwrite a fresher result.
func (c *Client) Autocomplete(ctx context.Context, queryText string) Response[[]ctbs.PointCity] {
	trimmed := strings.TrimSpace(queryText)
	if utf8.RuneCountInString(trimmed) < MinAutocompleteLength {
		return failure[[]ctbs.PointCity](bussystem.NewValidationError("autocomplete query below minimum length"))
	}

	ctx, generation := c.supersede(ctx)

	params := map[string]string{"autocomplete": trimmed, "lang": c.lang}
	response := run(ctx, c, "autocomplete", params, TTLAutocomplete, func(ctx context.Context) ([]ctbs.PointCity, error) {
		if c.mock {
			return mockAutocomplete(trimmed), nil
		}

		raw, err := c.transport.Post(ctx, bussystem.EndpointGetPoints, map[string]interface{}{
			"autocomplete": trimmed,
		})
		if err != nil {
			return nil, err
		}

		return emptyOnUnrecognised(normalise.CityList(raw, c.lang))
	})

	if c.isSuperseded(generation) {
		return failure[[]ctbs.PointCity](&bussystem.Error{
			Code:    bussystem.ErrorCodeSuperseded,
			Message: "superseded by a newer autocomplete query",
		})
	}

	return response
}

// GetCountries lists the provider's bookable countries.
func (c *Client) GetCountries(ctx context.Context) Response[[]ctbs.Country] {
	params := map[string]string{"lang": c.lang}

	return run(ctx, c, "countries", params, TTLCountries, func(ctx context.Context) ([]ctbs.Country, error) {
		if c.mock {
			return mockCountries(), nil
		}

		// viev is not a typo on our side; it is the provider's parameter name.
		raw, err := c.transport.Post(ctx, bussystem.EndpointGetPoints, map[string]interface{}{
			"viev": "get_country",
		})
		if err != nil {
			return nil, err
		}

		return emptyOnUnrecognised(normalise.CountryList(raw, c.lang))
	})
}

// GetCitiesByCountry lists the bookable points of one country.
func (c *Client) GetCitiesByCountry(ctx context.Context, countryID string) Response[[]ctbs.PointCity] {
	if countryID == "" {
		return failure[[]ctbs.PointCity](bussystem.NewValidationError("country_id is required"))
	}

	params := map[string]string{"country_id": countryID, "lang": c.lang}

	return run(ctx, c, "cities", params, TTLCities, func(ctx context.Context) ([]ctbs.PointCity, error) {
		if c.mock {
			return mockCitiesByCountry(countryID), nil
		}

		raw, err := c.transport.Post(ctx, bussystem.EndpointGetPoints, map[string]interface{}{
			"country_id": countryID,
		})
		if err != nil {
			return nil, err
		}

		return emptyOnUnrecognised(normalise.CityList(raw, c.lang))
	})
}

// GetCountryGroups lists every country with its points nested, for the
// grouped destination browser.
func (c *Client) GetCountryGroups(ctx context.Context) Response[[]ctbs.CountryGroup] {
	params := map[string]string{"lang": c.lang, "group": "country"}

	return run(ctx, c, "country_groups", params, TTLCountries, func(ctx context.Context) ([]ctbs.CountryGroup, error) {
		if c.mock {
			return mockCountryGroups(), nil
		}

		raw, err := c.transport.Post(ctx, bussystem.EndpointGetPoints, map[string]interface{}{
			"group_by_country": 1,
		})
		if err != nil {
			return nil, err
		}

		return emptyOnUnrecognised(normalise.CountryGroups(raw, c.lang))
	})
}

func (c *Client) supersede(ctx context.Context) (context.Context, uint64) {
	c.acMu.Lock()
	defer c.acMu.Unlock()

	if c.acCancel != nil {
		c.acCancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	c.acCancel = cancel
	c.acGen++

	return ctx, c.acGen
}

func (c *Client) isSuperseded(generation uint64) bool {
	c.acMu.Lock()
	defer c.acMu.Unlock()

	return generation != c.acGen
}
