// Package cafeteria looks up campus cafeterias and their daily menus.
package cafeteria

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sigma_app/internal/api"
	"sigma_app/platform/apperr"
	"sigma_app/platform/logger"

	"github.com/patrickmn/go-cache"
)

// DefaultMenuLimit is the page size the backend uses when none is given.
const DefaultMenuLimit = 100

// DateLayout is the wire format of menu dates.
const DateLayout = "2006-01-02"

// Cafeteria lists rarely change, so they are kept for a few minutes.
const (
	cafeteriaTTL     = 5 * time.Minute
	cacheCleanupTick = 10 * time.Minute
)

// Cafeteria is one row of GET /cafeterias.
type Cafeteria struct {
	ID       string  `json:"cafe_id"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

// Menu is one row of GET /menus.
type Menu struct {
	ID       string `json:"menu_id"`
	CafeName string `json:"cafe_name"`
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	ItemName string `json:"item_name"`
	Price    *int   `json:"price"`
}

// MenuInput is the body of POST /menus.
type MenuInput struct {
	CafeName string `json:"cafe_name" binding:"required"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	MealType string `json:"meal_type" binding:"required"`
	ItemName string `json:"item_name" binding:"required"`
	Price    *int   `json:"price" binding:"omitempty,gte=0"`
}

// MenuFilter narrows GET /menus. Zero values mean "any".
type MenuFilter struct {
	Date  time.Time
	Cafe  string
	Limit int
}

// Query renders the filter as query parameters.
func (f MenuFilter) Query() url.Values {
	q := url.Values{}
	if !f.Date.IsZero() {
		q.Set("date", f.Date.Format(DateLayout))
	}
	if f.Cafe != "" {
		q.Set("cafe", f.Cafe)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultMenuLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// Client reads cafeteria data from the backend.
type Client struct {
	api   *api.Client
	log   *logger.Logger
	cafes *cache.Cache
}

func New(apiClient *api.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		api:   apiClient,
		log:   log,
		cafes: cache.New(cafeteriaTTL, cacheCleanupTick),
	}
}

// ListCafeterias returns cafeterias whose name contains q, sorted by name.
// Successful results are cached per query.
func (c *Client) ListCafeterias(ctx context.Context, q string) ([]Cafeteria, error) {
	if x, found := c.cafes.Get(q); found {
		return append([]Cafeteria(nil), x.([]Cafeteria)...), nil
	}

	var query url.Values
	if q != "" {
		query = url.Values{"q": {q}}
	}
	var out []Cafeteria
	if err := c.get(ctx, "/cafeterias", query, &out, "cafeteria.ListCafeterias"); err != nil {
		return nil, err
	}
	c.cafes.Set(q, out, cache.DefaultExpiration)
	return append([]Cafeteria(nil), out...), nil
}


// ListMenus returns menus newest first.
func (c *Client) ListMenus(ctx context.Context, filter MenuFilter) ([]Menu, error) {
	var out []Menu
	if err := c.get(ctx, "/menus", filter.Query(), &out, "cafeteria.ListMenus"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertMenu creates or updates one menu item.
func (c *Client) UpsertMenu(ctx context.Context, in MenuInput) (*Menu, error) {
	resp, err := c.api.Do(ctx, http.MethodPost, "/menus", nil, in)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, c.rejected(resp, "cafeteria.UpsertMenu")
	}
	var menu Menu
	if err := resp.DecodeJSON(&menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}, op string) error {
	resp, err := c.api.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return c.rejected(resp, op)
	}
	if err := resp.DecodeJSON(out); err != nil {
		c.log.Error("cafeteria decode failed", "op", op, "error", err)
		return err
	}
	return nil
}

func (c *Client) rejected(resp *api.Response, op string) error {
	msg, ok := api.ErrorMessage(resp.Body)
	if !ok {
		msg = api.StatusMessage("조회", resp.StatusCode)
	}
	c.log.Warn("cafeteria request rejected", "op", op, "status", resp.StatusCode)
	return apperr.Rejected(msg).WithOp(op).WithDetails(map[string]int{"status": resp.StatusCode})
}
