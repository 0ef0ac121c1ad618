package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripweaver/internal/cache"
	"github.com/pkordes/tripweaver/internal/domain"
)

const (
	// DefaultBaseURL is the public OpenTripMap API root.
	DefaultBaseURL = "https://api.opentripmap.com/0.1/en"

	// DefaultRadius and DefaultLimit apply when a search leaves them unset.
	DefaultRadius = 10000
	DefaultLimit  = 20
	MaxLimit      = 50

	searchKinds        = "cultural,historic,architecture,tourist_facilities,museums"
	defaultHTTPTimeout = 8 * time.Second
	defaultConcurrency = 8
	defaultRating      = 3

	fallbackName        = "Unnamed Attraction"
	fallbackDescription = "A popular attraction worth visiting."
	fallbackImage       = "/img/placeholder.png"
	fallbackHours       = "Hours vary"
)

// OpenTripMap fetches attractions from the OpenTripMap places API: a city is
// resolved to coordinates, nearby places are listed, and each place is
// resolved to its detail record. Results are cached when a cache is set.
type OpenTripMap struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	cache       cache.Store
	cacheTTL    time.Duration
	concurrency int
}

// Option configures an OpenTripMap client.
type Option func(*OpenTripMap)

// WithBaseURL overrides the API root (used by tests).
func WithBaseURL(u string) Option {
	return func(c *OpenTripMap) {
		if strings.TrimSpace(u) != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OpenTripMap) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCache caches search results for ttl.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(c *OpenTripMap) {
		c.cache = store
		c.cacheTTL = ttl
	}
}

// WithConcurrency bounds the number of detail requests in flight.
func WithConcurrency(n int) Option {
	return func(c *OpenTripMap) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewOpenTripMap constructs a client for the given API key.
func NewOpenTripMap(apiKey string, opts ...Option) *OpenTripMap {
	c := &OpenTripMap{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ByCity returns attractions within radius meters of the named city.
// Returns domain.ErrNotFound when the city cannot be resolved.
func (c *OpenTripMap) ByCity(ctx context.Context, city string, radius, limit int) ([]domain.Attraction, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	radius, limit = searchBounds(radius, limit)

	key := "otm:city:" + hashKey(fmt.Sprintf("%s|%d|%d", strings.ToLower(city), radius, limit))
	if cached, ok := c.cached(ctx, key); ok {
		return cached, nil
	}

	var geo geoname
	if err := c.get(ctx, "/places/geoname", url.Values{"name": {city}}, &geo); err != nil {
		return nil, fmt.Errorf("catalog.OpenTripMap.ByCity: geoname: %w", err)
	}
	if geo.Lat == nil || geo.Lon == nil {
		return nil, fmt.Errorf("catalog.OpenTripMap.ByCity: %w: city %q", domain.ErrNotFound, city)
	}

	location := city + ", " + geo.Country
	out, err := c.search(ctx, *geo.Lat, *geo.Lon, radius, limit, func(detail) string { return location })
	if err != nil {
		return nil, fmt.Errorf("catalog.OpenTripMap.ByCity: %w", err)
	}
	c.store(ctx, key, out)
	return out, nil
}

// ByCoordinates returns attractions within radius meters of lat/lng.
func (c *OpenTripMap) ByCoordinates(ctx context.Context, lat, lng float64, radius, limit int) ([]domain.Attraction, error) {
	radius, limit = searchBounds(radius, limit)

	key := "otm:coords:" + hashKey(fmt.Sprintf("%.5f,%.5f|%d|%d", lat, lng, radius, limit))
	if cached, ok := c.cached(ctx, key); ok {
		return cached, nil
	}

	out, err := c.search(ctx, lat, lng, radius, limit, func(d detail) string {
		if d.Address.City != "" {
			return d.Address.City
		}
		return "Unknown"
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.OpenTripMap.ByCoordinates: %w", err)
	}
	c.store(ctx, key, out)
	return out, nil
}

// search lists places around a point and resolves each to an attraction.
// Places whose detail lookup fails are dropped.
func (c *OpenTripMap) search(ctx context.Context, lat, lng float64, radius, limit int, location func(detail) string) ([]domain.Attraction, error) {
	var places featureCollection
	err := c.get(ctx, "/places/radius", url.Values{
		"radius": {strconv.Itoa(radius)},
		"lon":    {strconv.FormatFloat(lng, 'f', -1, 64)},
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"kinds":  {searchKinds},
		"limit":  {strconv.Itoa(limit)},
	}, &places)
	if err != nil {
		return nil, fmt.Errorf("radius: %w", err)
	}

	features := places.Features
	if len(features) > limit {
		features = features[:limit]
	}

	results := make([]*domain.Attraction, len(features))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, f := range features {
		g.Go(func() error {
			var d detail
			if err := c.get(ctx, "/places/xid/"+url.PathEscape(f.Properties.XID), nil, &d); err != nil {
				return nil
			}
			a := toAttraction(f, d, location(d))
			results[i] = &a
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []domain.Attraction{}
	for _, a := range results {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (c *OpenTripMap) get(ctx context.Context, path string, q url.Values, dst any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("opentripmap %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("opentripmap %s: decode: %w", path, err)
	}
	return nil
}

func (c *OpenTripMap) cached(ctx context.Context, key string) ([]domain.Attraction, bool) {
	if c.cache == nil {
		return nil, false
	}
	b, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var out []domain.Attraction
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (c *OpenTripMap) store(ctx context.Context, key string, v []domain.Attraction) {
	if c.cache == nil {
		return
	}
	if b, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, b, c.cacheTTL)
	}
}

func searchBounds(radius, limit int) (int, int) {
	if radius <= 0 {
		radius = DefaultRadius
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return radius, min(limit, MaxLimit)
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ---- wire types ------------------------------------------------------------

type geoname struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
	Properties struct {
		XID   string `json:"xid"`
		Name  string `json:"name"`
		Kinds string `json:"kinds"`
	} `json:"properties"`
}

type detail struct {
	XID       string `json:"xid"`
	Name      string `json:"name"`
	Kinds     string `json:"kinds"`
	Rate      rate   `json:"rate"`
	Wikipedia string `json:"wikipedia"`
	Image     string `json:"image"`
	Preview   *struct {
		Source string `json:"source"`
	} `json:"preview"`
	WikipediaExtracts *struct {
		Text string `json:"text"`
	} `json:"wikipedia_extracts"`
	Info *struct {
		Descr string `json:"descr"`
	} `json:"info"`
	Address struct {
		City string `json:"city"`
	} `json:"address"`
}

// rate is OpenTripMap's popularity score. Detail records encode it as a
// string such as "3h"; listings use a bare number. Only the leading digits
// are kept.
type rate int

func (r *rate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		*r = 0
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return errors.New("invalid rate")
	}
	*r = rate(n)
	return nil
}

// ---- mapping ---------------------------------------------------------------

func toAttraction(f feature, d detail, location string) domain.Attraction {
	a := domain.Attraction{
		ID:          f.Properties.XID,
		Name:        firstNonEmpty(d.Name, f.Properties.Name, fallbackName),
		Category:    categoryFromKinds(f.Properties.Kinds),
		Location:    location,
		Rating:      min(int(d.Rate), 5),
		Price:       domain.PriceFree,
		Description: fallbackDescription,
		Image:       fallbackImage,
		Features:    featuresOf(d),
		Hours:       fallbackHours,
	}
	if len(f.Geometry.Coordinates) == 2 {
		a.Coordinates = domain.Coordinates{Lat: f.Geometry.Coordinates[1], Lng: f.Geometry.Coordinates[0]}
	}
	if a.Rating <= 0 {
		a.Rating = defaultRating
	}
	if d.Rate > 3 {
		a.Price = domain.PricePaid
	}
	switch {
	case d.WikipediaExtracts != nil && d.WikipediaExtracts.Text != "":
		a.Description = d.WikipediaExtracts.Text
	case d.Info != nil && d.Info.Descr != "":
		a.Description = d.Info.Descr
	}
	switch {
	case d.Preview != nil && d.Preview.Source != "":
		a.Image = d.Preview.Source
	case d.Image != "":
		a.Image = d.Image
	}
	return a
}

// categoryFromKinds maps OpenTripMap's comma-separated kinds to a display
// category. The first matching rule wins.
func categoryFromKinds(kinds string) string {
	if kinds == "" {
		return "Attraction"
	}
	k := strings.ToLower(kinds)
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(k, s) {
				return true
			}
		}
		return false
	}
	switch {
	case has("museum"):
		return "Museum"
	case has("historic"):
		return "Historic Site"
	case has("architecture"):
		return "Architecture"
	case has("church", "religion"):
		return "Religious Site"
	case has("park", "garden"):
		return "Park"
	case has("theatre", "cinema"):
		return "Entertainment"
	case has("monument"):
		return "Monument"
	}
	return "Landmark"
}

func featuresOf(d detail) []string {
	var out []string
	if d.Rate >= 4 {
		out = append(out, "Highly rated")
	}
	if d.Wikipedia != "" {
		out = append(out, "Notable landmark")
	}
	if strings.Contains(d.Kinds, "tourist_facilities") {
		out = append(out, "Tourist-friendly")
	}
	if d.Image != "" || d.Preview != nil {
		out = append(out, "Photo opportunity")
	}
	if len(out) == 0 {
		out = []string{"Worth visiting", "Historic interest"}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
