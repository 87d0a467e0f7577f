package hafas

import (
	"bytes"
	"net/url"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Products maps backend product identifiers to their display names
var Products = map[string]string{
	"nationalExpress": "Intercity-Express",
	"national":        "Intercity/Eurocity",
	"regionalExpress": "sonst. Fernzug",
	"regional":        "Regionalexpress/-bahn",
	"suburban":        "S-Bahn",
	"subway":          "U-Bahn",
	"tram":            "Straßenbahn",
	"bus":             "Bus",
	"ferry":           "Fähre",
	"taxi":            "Ruftaxi",
}

type JourneysOptions struct {
	Results       int             `json:"results" yaml:"results"`
	Transfers     int             `json:"transfers" yaml:"transfers"`
	TransferTime  int             `json:"transferTime" yaml:"transferTime"`
	Bike          bool            `json:"bike" yaml:"bike"`
	Accessibility string          `json:"accessibility" yaml:"accessibility"`
	Products      map[string]bool `json:"products" yaml:"products"`
}

func DefaultJourneysOptions() JourneysOptions {
	products := map[string]bool{}
	for product := range Products {
		products[product] = true
	}

	return JourneysOptions{
		Results:       3,
		Transfers:     -1,
		TransferTime:  0,
		Bike:          false,
		Accessibility: "none",
		Products:      products,
	}
}

// LoadJourneysOptions reads options from a YAML file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadJourneysOptions(path string) (JourneysOptions, error) {
	options := DefaultJourneysOptions()

	if path == "" {
		return options, nil
	}

	optionsYaml, err := os.ReadFile(path)
	if err != nil {
		return options, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(optionsYaml))
	if err := decoder.Decode(&options); err != nil {
		return options, err
	}

	log.Debug().Str("path", path).Int("results", options.Results).Msg("Loaded journeys options")

	return options, nil
}

func (o JourneysOptions) apply(values url.Values) {
	if o.Results > 0 {
		values.Set("results", strconv.Itoa(o.Results))
	}
	if o.Transfers >= 0 {
		values.Set("transfers", strconv.Itoa(o.Transfers))
	}
	if o.TransferTime > 0 {
		values.Set("transferTime", strconv.Itoa(o.TransferTime))
	}
	if o.Bike {
		values.Set("bike", "true")
	}
	if o.Accessibility != "" && o.Accessibility != "none" {
		values.Set("accessibility", o.Accessibility)
	}
	for product, enabled := range o.Products {
		values.Set(product, strconv.FormatBool(enabled))
	}

	values.Set("stopovers", "true")
	values.Set("polylines", "true")
}
