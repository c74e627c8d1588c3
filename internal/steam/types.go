package steam

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// App is one row of the application directory.
type App struct {
	AppID int64  `json:"appid"`
	Name  string `json:"name"`
}

type appListResponse struct {
	AppList struct {
		Apps []App `json:"apps"`
	} `json:"applist"`
}

// AppDetails is the storefront metadata for one application. Every field is
// optional upstream; absent values decode to zero values.
type AppDetails struct {
	AppID            int64
	Type             string
	Name             string
	AboutTheGame     string
	ShortDescription string
	HeaderImage      string
	Website          string
	IsFree           bool
	RequiredAge      string
	Developers       []string
	Publishers       []string
	Genres           []string
	ReleaseDate      string
	ComingSoon       bool
	PriceOverview    json.RawMessage
	Categories       json.RawMessage
}

// About returns the long description, falling back to the short one.
func (d *AppDetails) About() string {
	if d == nil {
		return ""
	}
	if strings.TrimSpace(d.AboutTheGame) != "" {
		return d.AboutTheGame
	}
	return d.ShortDescription
}

func parseAppDetails(id int64, data gjson.Result) *AppDetails {
	details := &AppDetails{
		AppID:            id,
		Type:             data.Get("type").String(),
		Name:             data.Get("name").String(),
		AboutTheGame:     data.Get("about_the_game").String(),
		ShortDescription: data.Get("short_description").String(),
		HeaderImage:      data.Get("header_image").String(),
		Website:          data.Get("website").String(),
		IsFree:           data.Get("is_free").Bool(),
		RequiredAge:      data.Get("required_age").String(),
		Developers:       stringList(data.Get("developers")),
		Publishers:       stringList(data.Get("publishers")),
		Genres:           stringList(data.Get("genres.#.description")),
		ReleaseDate:      data.Get("release_date.date").String(),
		ComingSoon:       data.Get("release_date.coming_soon").Bool(),
	}
	if price := data.Get("price_overview"); price.IsObject() {
		details.PriceOverview = json.RawMessage(price.Raw)
	}
	if categories := data.Get("categories"); categories.IsArray() {
		details.Categories = json.RawMessage(categories.Raw)
	}
	return details
}

func stringList(result gjson.Result) []string {
	if !result.IsArray() {
		return nil
	}
	var out []string
	for _, item := range result.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
