package domain

// ModelType is the dakkapel model variant.
type ModelType string

const (
	ModelTypeA ModelType = "typeA"
	ModelTypeB ModelType = "typeB"
	ModelTypeC ModelType = "typeC"
	ModelTypeD ModelType = "typeD"
	ModelTypeE ModelType = "typeE"
)

var ModelTypes = []ModelType{ModelTypeA, ModelTypeB, ModelTypeC, ModelTypeD, ModelTypeE}

func (m ModelType) Valid() bool {
	switch m {
	case ModelTypeA, ModelTypeB, ModelTypeC, ModelTypeD, ModelTypeE:
		return true
	}
	return false
}

// Label returns the customer-facing name of the model.
func (m ModelType) Label() string {
	switch m {
	case ModelTypeA:
		return "Plat dak standaard"
	case ModelTypeB:
		return "Zadeldak"
	case ModelTypeC:
		return "Plat dak met overstek"
	case ModelTypeD:
		return "Lessenaarsdak"
	case ModelTypeE:
		return "Mansardekap"
	}
	return string(m)
}

type Material string

const (
	MaterialKunststof Material = "kunststof"
	MaterialHout      Material = "hout"
	MaterialAluminium Material = "aluminium"
	MaterialPolyester Material = "polyester"
	MaterialZink      Material = "zink"
	MaterialLeien     Material = "leien"
)

var Materials = []Material{
	MaterialKunststof, MaterialHout, MaterialAluminium,
	MaterialPolyester, MaterialZink, MaterialLeien,
}

func (m Material) Valid() bool {
	switch m {
	case MaterialKunststof, MaterialHout, MaterialAluminium,
		MaterialPolyester, MaterialZink, MaterialLeien:
		return true
	}
	return false
}

// Color is a palette color for one of the colored parts.
type Color string

const (
	ColorWit       Color = "wit"
	ColorCreme     Color = "creme"
	ColorAntraciet Color = "antraciet"
	ColorZwart     Color = "zwart"
	ColorGrijs     Color = "grijs"
	ColorGroen     Color = "groen"
	ColorBlauw     Color = "blauw"
)

var PaletteColors = []Color{
	ColorWit, ColorCreme, ColorAntraciet, ColorZwart,
	ColorGrijs, ColorGroen, ColorBlauw,
}

func (c Color) Valid() bool {
	switch c {
	case ColorWit, ColorCreme, ColorAntraciet, ColorZwart,
		ColorGrijs, ColorGroen, ColorBlauw:
		return true
	}
	return false
}

type FrameHeightTier string

const (
	FrameHeightStandaard FrameHeightTier = "standaard"
	FrameHeightHoog      FrameHeightTier = "hoog"
	FrameHeightExtraHoog FrameHeightTier = "extra_hoog"
)

var FrameHeightTiers = []FrameHeightTier{FrameHeightStandaard, FrameHeightHoog, FrameHeightExtraHoog}

func (f FrameHeightTier) Valid() bool {
	switch f {
	case FrameHeightStandaard, FrameHeightHoog, FrameHeightExtraHoog:
		return true
	}
	return false
}

// Elevation is the side of the house the dakkapel is placed on.
type Elevation string

const (
	ElevationVoorzijde   Elevation = "voorzijde"
	ElevationAchterzijde Elevation = "achterzijde"
	ElevationZijkant     Elevation = "zijkant"
)

var Elevations = []Elevation{ElevationVoorzijde, ElevationAchterzijde, ElevationZijkant}

func (e Elevation) Valid() bool {
	switch e {
	case ElevationVoorzijde, ElevationAchterzijde, ElevationZijkant:
		return true
	}
	return false
}

// InsulationTier is the Rc-value upgrade level.
type InsulationTier string

const (
	InsulationStandaard InsulationTier = "standaard"
	InsulationVerbeterd InsulationTier = "verbeterd"
	InsulationMaximaal  InsulationTier = "maximaal"
)

var InsulationTiers = []InsulationTier{InsulationStandaard, InsulationVerbeterd, InsulationMaximaal}

func (i InsulationTier) Valid() bool {
	switch i {
	case InsulationStandaard, InsulationVerbeterd, InsulationMaximaal:
		return true
	}
	return false
}

// RcValue returns the thermal resistance the tier stands for.
func (i InsulationTier) RcValue() float64 {
	switch i {
	case InsulationVerbeterd:
		return 4.5
	case InsulationMaximaal:
		return 6.0
	}
	return 3.5
}

type DeliveryTime string

const (
	DeliveryASAP     DeliveryTime = "zo_snel_mogelijk"
	Delivery3Months  DeliveryTime = "binnen_3_maanden"
	Delivery6Months  DeliveryTime = "binnen_6_maanden"
	DeliveryFlexible DeliveryTime = "flexibel"
)

var DeliveryTimes = []DeliveryTime{DeliveryASAP, Delivery3Months, Delivery6Months, DeliveryFlexible}

func (d DeliveryTime) Valid() bool {
	switch d {
	case DeliveryASAP, Delivery3Months, Delivery6Months, DeliveryFlexible:
		return true
	}
	return false
}
