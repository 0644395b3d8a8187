package domain

import "fmt"

// Colors holds one palette color per colored part.
type Colors struct {
	Frame Color `json:"frame"`
	Side  Color `json:"side"`
	Sash  Color `json:"sash"`
}

type ColorsPatch struct {
	Frame *Color `json:"frame,omitempty"`
	Side  *Color `json:"side,omitempty"`
	Sash  *Color `json:"sash,omitempty"`
}

func (c Colors) Merge(p ColorsPatch) Colors {
	if p.Frame != nil {
		c.Frame = *p.Frame
	}
	if p.Side != nil {
		c.Side = *p.Side
	}
	if p.Sash != nil {
		c.Sash = *p.Sash
	}
	return c
}

// Contact is filled in on the last step only.
type Contact struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Comments   string `json:"comments"`
}

type ContactPatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	City       *string `json:"city,omitempty"`
	Comments   *string `json:"comments,omitempty"`
}

func (c Contact) Merge(p ContactPatch) Contact {
	mergeString(&c.Name, p.Name)
	mergeString(&c.Email, p.Email)
	mergeString(&c.Phone, p.Phone)
	mergeString(&c.Address, p.Address)
	mergeString(&c.PostalCode, p.PostalCode)
	mergeString(&c.City, p.City)
	mergeString(&c.Comments, p.Comments)
	return c
}

func mergeString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Configuration is one customer's in-progress dakkapel choice set.
// Width and Height are always concrete allowed values.
type Configuration struct {
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	RoofAngle    int             `json:"roofAngle"`
	Model        ModelType       `json:"model"`
	Material     Material        `json:"material"`
	Colors       Colors          `json:"colors"`
	FrameHeight  FrameHeightTier `json:"frameHeightTier"`
	Elevation    Elevation       `json:"elevation"`
	Insulation   InsulationTier  `json:"insulationTier"`
	WindowCount  int             `json:"windowCount"`
	Options      Options         `json:"options"`
	DeliveryTime DeliveryTime    `json:"deliveryTime"`
	Contact      Contact         `json:"contact"`
}

// NewConfiguration returns the defaults a fresh wizard starts from.
func NewConfiguration() Configuration {
	return Configuration{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		RoofAngle: 40,
		Model:     ModelTypeA,
		Material:  MaterialKunststof,
		Colors: Colors{
			Frame: ColorWit,
			Side:  ColorWit,
			Sash:  ColorWit,
		},
		FrameHeight:  FrameHeightStandaard,
		Elevation:    ElevationAchterzijde,
		Insulation:   InsulationStandaard,
		WindowCount:  2,
		DeliveryTime: DeliveryFlexible,
	}
}

func (c Configuration) WidthBucket() WidthBucket         { return BucketForWidth(c.Width) }
func (c Configuration) RoofAngleBucket() RoofAngleBucket { return BucketForRoofAngle(c.RoofAngle) }

// WidthMeters is the width used for per-meter prices.
func (c Configuration) WidthMeters() float64 { return float64(c.Width) / 100 }

// Field identifies a top-level configuration field; steps own fields.
type Field string

const (
	FieldWidth        Field = "width"
	FieldHeight       Field = "height"
	FieldRoofAngle    Field = "roofAngle"
	FieldModel        Field = "model"
	FieldMaterial     Field = "material"
	FieldColors       Field = "colors"
	FieldFrameHeight  Field = "frameHeightTier"
	FieldElevation    Field = "elevation"
	FieldInsulation   Field = "insulationTier"
	FieldWindowCount  Field = "windowCount"
	FieldOptions      Field = "options"
	FieldDeliveryTime Field = "deliveryTime"
	FieldContact      Field = "contact"
)

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Width        *DimensionChoice `json:"width,omitempty"`
	Height       *DimensionChoice `json:"height,omitempty"`
	RoofAngle    *int             `json:"roofAngle,omitempty"`
	Model        *ModelType       `json:"model,omitempty"`
	Material     *Material        `json:"material,omitempty"`
	Colors       *ColorsPatch     `json:"colors,omitempty"`
	FrameHeight  *FrameHeightTier `json:"frameHeightTier,omitempty"`
	Elevation    *Elevation       `json:"elevation,omitempty"`
	Insulation   *InsulationTier  `json:"insulationTier,omitempty"`
	WindowCount  *int             `json:"windowCount,omitempty"`
	Options      *OptionsPatch    `json:"options,omitempty"`
	DeliveryTime *DeliveryTime    `json:"deliveryTime,omitempty"`
	Contact      *ContactPatch    `json:"contact,omitempty"`
}

// Fields lists the top-level fields the patch touches.
func (p Patch) Fields() []Field {
	var out []Field
	add := func(set bool, f Field) {
		if set {
			out = append(out, f)
		}
	}
	add(p.Width != nil, FieldWidth)
	add(p.Height != nil, FieldHeight)
	add(p.RoofAngle != nil, FieldRoofAngle)
	add(p.Model != nil, FieldModel)
	add(p.Material != nil, FieldMaterial)
	add(p.Colors != nil, FieldColors)
	add(p.FrameHeight != nil, FieldFrameHeight)
	add(p.Elevation != nil, FieldElevation)
	add(p.Insulation != nil, FieldInsulation)
	add(p.WindowCount != nil, FieldWindowCount)
	add(p.Options != nil, FieldOptions)
	add(p.DeliveryTime != nil, FieldDeliveryTime)
	add(p.Contact != nil, FieldContact)
	return out
}

// FieldError reports an invalid value in a patch.
type FieldError struct {
	Field Field
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Validate checks enumerated values and ranges of the fields present.
func (p Patch) Validate() error {
	if p.Width != nil {
		if cm, ok := p.Width.Value(); ok && !IsAllowedWidth(cm) {
			return &FieldError{Field: FieldWidth, Msg: fmt.Sprintf("width %d is not an allowed value", cm)}
		}
	}
	if p.Height != nil {
		if cm, ok := p.Height.Value(); ok && !IsAllowedHeight(cm) {
			return &FieldError{Field: FieldHeight, Msg: fmt.Sprintf("height %d is not an allowed value", cm)}
		}
	}
	if p.RoofAngle != nil && (*p.RoofAngle < 0 || *p.RoofAngle > 90) {
		return &FieldError{Field: FieldRoofAngle, Msg: "roof angle must be between 0 and 90 degrees"}
	}
	if p.Model != nil && !p.Model.Valid() {
		return &FieldError{Field: FieldModel, Msg: fmt.Sprintf("unknown model %q", *p.Model)}
	}
	if p.Material != nil && !p.Material.Valid() {
		return &FieldError{Field: FieldMaterial, Msg: fmt.Sprintf("unknown material %q", *p.Material)}
	}
	if p.Colors != nil {
		for _, c := range []*Color{p.Colors.Frame, p.Colors.Side, p.Colors.Sash} {
			if c != nil && !c.Valid() {
				return &FieldError{Field: FieldColors, Msg: fmt.Sprintf("unknown color %q", *c)}
			}
		}
	}
	if p.FrameHeight != nil && !p.FrameHeight.Valid() {
		return &FieldError{Field: FieldFrameHeight, Msg: fmt.Sprintf("unknown frame height %q", *p.FrameHeight)}
	}
	if p.Elevation != nil && !p.Elevation.Valid() {
		return &FieldError{Field: FieldElevation, Msg: fmt.Sprintf("unknown elevation %q", *p.Elevation)}
	}
	if p.Insulation != nil && !p.Insulation.Valid() {
		return &FieldError{Field: FieldInsulation, Msg: fmt.Sprintf("unknown insulation tier %q", *p.Insulation)}
	}
	if p.WindowCount != nil && (*p.WindowCount < 1 || *p.WindowCount > 4) {
		return &FieldError{Field: FieldWindowCount, Msg: "window count must be between 1 and 4"}
	}
	if p.DeliveryTime != nil && !p.DeliveryTime.Valid() {
		return &FieldError{Field: FieldDeliveryTime, Msg: fmt.Sprintf("unknown delivery time %q", *p.DeliveryTime)}
	}
	return nil
}

// Apply merges p into a copy of c. Dimension fields that ask for advice are
// not merged; they are returned so the caller can open the advice dialog.
// Apply is idempotent: applying the same patch twice equals applying it once.
func (c Configuration) Apply(p Patch) (Configuration, []Field) {
	var advice []Field

	if p.Width != nil {
		if cm, ok := p.Width.Value(); ok {
			c.Width = cm
		} else {
			advice = append(advice, FieldWidth)
		}
	}
	if p.Height != nil {
		if cm, ok := p.Height.Value(); ok {
			c.Height = cm
		} else {
			advice = append(advice, FieldHeight)
		}
	}
	if p.RoofAngle != nil {
		c.RoofAngle = *p.RoofAngle
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.Material != nil {
		c.Material = *p.Material
	}
	if p.Colors != nil {
		c.Colors = c.Colors.Merge(*p.Colors)
	}
	if p.FrameHeight != nil {
		c.FrameHeight = *p.FrameHeight
	}
	if p.Elevation != nil {
		c.Elevation = *p.Elevation
	}
	if p.Insulation != nil {
		c.Insulation = *p.Insulation
	}
	if p.WindowCount != nil {
		c.WindowCount = *p.WindowCount
	}
	if p.Options != nil {
		c.Options = c.Options.Merge(*p.Options)
	}
	if p.DeliveryTime != nil {
		c.DeliveryTime = *p.DeliveryTime
	}
	if p.Contact != nil {
		c.Contact = c.Contact.Merge(*p.Contact)
	}
	return c, advice
}

// Warning is a non-blocking notice shown next to a field.
type Warning struct {
	Code    string `json:"code"`
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

const WarningLowRoofAngle = "low_roof_angle"

// Warnings never influence the price.
func (c Configuration) Warnings() []Warning {
	var out []Warning
	if c.RoofAngle < LowRoofAngle {
		out = append(out, Warning{
			Code:    WarningLowRoofAngle,
			Field:   FieldRoofAngle,
			Message: fmt.Sprintf("Bij een dakhelling onder %d graden is een dakkapel vaak niet zonder meer mogelijk. Wij nemen contact met u op.", LowRoofAngle),
		})
	}
	return out
}
