package wizard

import (
	"strconv"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
)

// Choice is one selectable value of a field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var materialLabels = map[domain.Material]string{
	domain.MaterialKunststof: "Kunststof",
	domain.MaterialHout:      "Hout",
	domain.MaterialAluminium: "Aluminium",
	domain.MaterialPolyester: "Polyester",
	domain.MaterialZink:      "Zink",
	domain.MaterialLeien:     "Leien",
}

// Choices lists the values offered for a field, or nil for free-form fields
// such as contact details and the roof angle.
func Choices(f domain.Field) []Choice {
	switch f {
	case domain.FieldWidth:
		return dimensionChoices(domain.AllowedWidths)
	case domain.FieldHeight:
		return dimensionChoices(domain.AllowedHeights)
	case domain.FieldModel:
		return enumChoices(domain.ModelTypes, func(m domain.ModelType) string { return m.Label() })
	case domain.FieldMaterial:
		return enumChoices(domain.Materials, func(m domain.Material) string { return materialLabels[m] })
	case domain.FieldColors:
		return enumChoices(domain.PaletteColors, nil)
	case domain.FieldFrameHeight:
		return enumChoices(domain.FrameHeightTiers, nil)
	case domain.FieldElevation:
		return enumChoices(domain.Elevations, nil)
	case domain.FieldInsulation:
		return enumChoices(domain.InsulationTiers, func(i domain.InsulationTier) string {
			return "Rc " + strconv.FormatFloat(i.RcValue(), 'f', 1, 64)
		})
	case domain.FieldDeliveryTime:
		return enumChoices(domain.DeliveryTimes, nil)
	case domain.FieldOptions:
		return enumChoices(domain.OptionKeys, func(k domain.OptionKey) string { return k.Label() })
	case domain.FieldWindowCount:
		return []Choice{{"1", "1 raam"}, {"2", "2 ramen"}, {"3", "3 ramen"}, {"4", "4 ramen"}}
	}
	return nil
}

func dimensionChoices(values []int) []Choice {
	out := make([]Choice, 0, len(values)+1)
	for _, v := range values {
		s := strconv.Itoa(v)
		out = append(out, Choice{Value: s, Label: s + " cm"})
	}
	return append(out, Choice{Value: domain.AdviceToken, Label: "Ik wil advies"})
}

func enumChoices[T ~string](values []T, label func(T) string) []Choice {
	out := make([]Choice, 0, len(values))
	for _, v := range values {
		l := string(v)
		if label != nil {
			l = label(v)
		}
		out = append(out, Choice{Value: string(v), Label: l})
	}
	return out
}
