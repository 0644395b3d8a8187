package submission

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
)

// StatusNew is the status of a freshly submitted request.
const StatusNew = "nieuw"

// Record is the flat row handed to the persistence collaborator. Colors and
// options are spread over their own columns.
type Record struct {
	ID          string    `json:"id"`
	ProductLine string    `json:"productLine"`
	SessionID   string    `json:"sessionId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`

	Width           int    `json:"width"`
	Height          int    `json:"height"`
	WidthBucket     string `json:"widthBucket"`
	RoofAngle       int    `json:"roofAngle"`
	RoofAngleBucket string `json:"roofAngleBucket"`
	Model           string `json:"model"`
	Material        string `json:"material"`
	FrameColor      string `json:"frameColor"`
	SideColor       string `json:"sideColor"`
	SashColor       string `json:"sashColor"`
	FrameHeight     string `json:"frameHeightTier"`
	Elevation       string `json:"elevation"`
	Insulation      string `json:"insulationTier"`
	WindowCount     int    `json:"windowCount"`
	DeliveryTime    string `json:"deliveryTime"`

	Options domain.Options `json:"options"`

	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PostalCode    string `json:"postalCode"`
	City          string `json:"city"`
	Comments      string `json:"comments"`
	AttachmentURL string `json:"attachmentUrl"`

	Subtotal       float64    `json:"subtotal"`
	Tax            float64    `json:"tax"`
	Total          float64    `json:"total"`
	PricingVersion int64      `json:"pricingVersion"`
	PriceLines     PriceLines `json:"priceLines"`
}

// NewRecord flattens a submission request.
func NewRecord(req Request, now time.Time) Record {
	c := req.Config
	return Record{
		ProductLine: req.ProductLine,
		SessionID:   req.SessionID,
		Status:      StatusNew,
		CreatedAt:   now,

		Width:           c.Width,
		Height:          c.Height,
		WidthBucket:     string(c.WidthBucket()),
		RoofAngle:       c.RoofAngle,
		RoofAngleBucket: string(c.RoofAngleBucket()),
		Model:           string(c.Model),
		Material:        string(c.Material),
		FrameColor:      string(c.Colors.Frame),
		SideColor:       string(c.Colors.Side),
		SashColor:       string(c.Colors.Sash),
		FrameHeight:     string(c.FrameHeight),
		Elevation:       string(c.Elevation),
		Insulation:      string(c.Insulation),
		WindowCount:     c.WindowCount,
		DeliveryTime:    string(c.DeliveryTime),

		Options: c.Options,

		Name:       c.Contact.Name,
		Email:      c.Contact.Email,
		Phone:      c.Contact.Phone,
		Address:    c.Contact.Address,
		PostalCode: c.Contact.PostalCode,
		City:       c.Contact.City,
		Comments:   c.Contact.Comments,

		Subtotal:       req.Price.Subtotal,
		Tax:            req.Price.Tax,
		Total:          req.Price.Total,
		PricingVersion: req.Price.TableVersion,
		PriceLines:     PriceLines(req.Price.Lines),
	}
}

// Column pairs a column name with a pointer into the record. The same list
// serves INSERT arguments and row scanning.
type Column struct {
	Name string
	Ptr  any
}

// Columns returns every persisted column in a fixed order, options last.
func (r *Record) Columns() []Column {
	cols := []Column{
		{"id", &r.ID},
		{"product_line", &r.ProductLine},
		{"session_id", &r.SessionID},
		{"status", &r.Status},
		{"created_at", &r.CreatedAt},
		{"width_cm", &r.Width},
		{"height_cm", &r.Height},
		{"width_bucket", &r.WidthBucket},
		{"roof_angle", &r.RoofAngle},
		{"roof_angle_bucket", &r.RoofAngleBucket},
		{"model", &r.Model},
		{"material", &r.Material},
		{"frame_color", &r.FrameColor},
		{"side_color", &r.SideColor},
		{"sash_color", &r.SashColor},
		{"frame_height_tier", &r.FrameHeight},
		{"elevation", &r.Elevation},
		{"insulation_tier", &r.Insulation},
		{"window_count", &r.WindowCount},
		{"delivery_time", &r.DeliveryTime},
		{"name", &r.Name},
		{"email", &r.Email},
		{"phone", &r.Phone},
		{"address", &r.Address},
		{"postal_code", &r.PostalCode},
		{"city", &r.City},
		{"comments", &r.Comments},
		{"attachment_url", &r.AttachmentURL},
		{"subtotal", &r.Subtotal},
		{"tax", &r.Tax},
		{"total", &r.Total},
		{"pricing_version", &r.PricingVersion},
		{"price_lines", &r.PriceLines},
	}
	for _, k := range domain.OptionKeys {
		cols = append(cols, Column{Name: OptionColumn(k), Ptr: r.Options.Field(k)})
	}
	return cols
}

// OptionColumn is the column name of an option flag.
func OptionColumn(k domain.OptionKey) string { return "opt_" + string(k) }

// PriceLines is stored as a JSON document.
type PriceLines []pricing.Line

func (p PriceLines) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]pricing.Line(p))
}

func (p *PriceLines) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]pricing.Line)(p))
	case string:
		return json.Unmarshal([]byte(v), (*[]pricing.Line)(p))
	}
	return errors.New("price_lines: unsupported source type")
}
