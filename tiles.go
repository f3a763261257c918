package geoplot

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strconv"
)

// TileSize is the edge length of a basemap tile in pixels.
const TileSize = 256

// DefaultTiles is the builtin provider selected by a fresh Session.
const DefaultTiles = "mapquest"

// CustomTiles is a caller-supplied tile provider.
type CustomTiles struct {
	// URL returns the download URL of a tile.
	URL func(zoom, xtile, ytile int) string
	// TilesDir is the local cache directory for downloaded tiles.
	TilesDir string
	// Attribution is shown in the corner of the map.
	Attribution string
}

func (c CustomTiles) validate(op string) error {
	switch {
	case c.URL == nil:
		return invalidArg(op, "tiles provider", "url", "url function must be set")
	case c.TilesDir == "":
		return invalidArg(op, "tiles provider", "tiles_dir", "tiles directory must be set")
	case c.Attribution == "":
		return invalidArg(op, "tiles provider", "attribution", "attribution must be set")
	}
	return nil
}

type builtinTiles struct {
	urlFormat   string // verbs: subdomain, zoom, x, y
	subdomains  []string
	attribution string
}

var stamenSubdomains = []string{"a", "b", "c"}

var builtinProviders = map[string]builtinTiles{
	"watercolor": {
		urlFormat:   "http://%s.tile.stamen.com/watercolor/%d/%d/%d.png",
		subdomains:  stamenSubdomains,
		attribution: "Map tiles by Stamen Design, under CC BY 3.0. Data by OpenStreetMap, under ODbL.",
	},
	"toner": {
		urlFormat:   "http://%s.tile.stamen.com/toner/%d/%d/%d.png",
		subdomains:  stamenSubdomains,
		attribution: "Map tiles by Stamen Design, under CC BY 3.0. Data by OpenStreetMap, under ODbL.",
	},
	"toner-lite": {
		urlFormat:   "http://%s.tile.stamen.com/toner-lite/%d/%d/%d.png",
		subdomains:  stamenSubdomains,
		attribution: "Map tiles by Stamen Design, under CC BY 3.0. Data by OpenStreetMap, under ODbL.",
	},
	"mapquest": {
		urlFormat:   "http://otile%s.mqcdn.com/tiles/1.0.0/osm/%d/%d/%d.png",
		subdomains:  []string{"1", "2", "3", "4"},
		attribution: "Tiles Courtesy of MapQuest (http://www.mapquest.com/) -- Map data (c) OpenStreetMap contributors, CC-BY-SA",
	},
	"darkmatter": {
		urlFormat:   "http://%s.basemaps.cartocdn.com/dark_all/%d/%d/%d.png",
		subdomains:  stamenSubdomains,
		attribution: "(c) OpenStreetMap contributors (c) CartoDB, CartoDB attributions",
	},
	"positron": {
		urlFormat:   "http://%s.basemaps.cartocdn.com/light_all/%d/%d/%d.png",
		subdomains:  stamenSubdomains,
		attribution: "(c) OpenStreetMap contributors (c) CartoDB, CartoDB attributions",
	},
}

// BuiltinTileProviders returns the names of the builtin basemap styles.
func BuiltinTileProviders() []string {
	names := make([]string, 0, len(builtinProviders))
	for name := range builtinProviders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TilesProvider selects the basemap source: either a builtin style or a
// CustomTiles record, never both. The zero value is not usable; build one
// with BuiltinTiles or NewCustomTiles.
type TilesProvider struct {
	name   string
	custom *CustomTiles
}

// BuiltinTiles returns the builtin provider with the given name.
func BuiltinTiles(name string) (TilesProvider, error) {
	if _, ok := builtinProviders[name]; !ok {
		return TilesProvider{}, invalidArg("BuiltinTiles", "tiles provider", name,
			fmt.Sprintf("must be one of %v", BuiltinTileProviders()))
	}
	return TilesProvider{name: name}, nil
}

// NewCustomTiles validates c and wraps it as a provider.
func NewCustomTiles(c CustomTiles) (TilesProvider, error) {
	if err := c.validate("NewCustomTiles"); err != nil {
		return TilesProvider{}, err
	}
	return TilesProvider{custom: &c}, nil
}

// Builtin returns the builtin style name, if this is a builtin provider.
func (p TilesProvider) Builtin() (string, bool) {
	return p.name, p.custom == nil && p.name != ""
}

// Custom returns the custom record, if this is a custom provider.
func (p TilesProvider) Custom() (CustomTiles, bool) {
	if p.custom == nil {
		return CustomTiles{}, false
	}
	return *p.custom, true
}

// URL returns the download URL of tile (zoom, xtile, ytile).
func (p TilesProvider) URL(zoom, xtile, ytile int) string {
	if p.custom != nil {
		return p.custom.URL(zoom, xtile, ytile)
	}
	b, ok := builtinProviders[p.name]
	if !ok {
		return ""
	}
	n := len(b.subdomains)
	sub := b.subdomains[((xtile+ytile)%n+n)%n]
	return fmt.Sprintf(b.urlFormat, sub, zoom, xtile, ytile)
}

// TilesDir returns the local cache directory. Builtin styles cache under
// their own name.
func (p TilesProvider) TilesDir() string {
	if p.custom != nil {
		return p.custom.TilesDir
	}
	return p.name
}

// Attribution returns the attribution text for the provider.
func (p TilesProvider) Attribution() string {
	if p.custom != nil {
		return p.custom.Attribution
	}
	return builtinProviders[p.name].attribution
}

// TilePath returns the cache path of a tile: <dir>/<zoom>/<x>/<y>.png.
func (p TilesProvider) TilePath(zoom, xtile, ytile int) string {
	return filepath.Join(p.TilesDir(), strconv.Itoa(zoom), strconv.Itoa(xtile), strconv.Itoa(ytile)+".png")
}

// Equal reports whether p and o select the same source. Custom providers
// are equal only when they are the same record.
func (p TilesProvider) Equal(o TilesProvider) bool {
	return p.name == o.name && p.custom == o.custom
}

// String returns the builtin name, or "custom:<dir>".
func (p TilesProvider) String() string {
	if p.custom != nil {
		return "custom:" + p.custom.TilesDir
	}
	return p.name
}

// TileXY returns the slippy-map tile containing (lat, lon) at zoom.
// Latitudes beyond the Mercator limit and lon 180 map to the edge tiles.
func TileXY(lat, lon float64, zoom int) (xtile, ytile int) {
	n := math.Exp2(float64(zoom))
	lat = math.Max(-maxMercatorLat, math.Min(lat, maxMercatorLat))
	latRad := lat * math.Pi / 180
	fx := (lon + 180) / 360 * n
	fy := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n
	last := int(n) - 1
	return max(0, min(int(fx), last)), max(0, min(int(fy), last))
}

// TileLatLon returns the north-west corner of tile (xtile, ytile) at zoom.
func TileLatLon(xtile, ytile, zoom int) (lat, lon float64) {
	n := math.Exp2(float64(zoom))
	lon = float64(xtile)/n*360 - 180
	lat = math.Atan(math.Sinh(math.Pi*(1-2*float64(ytile)/n))) * 180 / math.Pi
	return lat, lon
}
