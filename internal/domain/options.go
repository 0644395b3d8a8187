package domain

// OptionKey names one of the boolean extras.
type OptionKey string

const (
	OptVentilatie           OptionKey = "ventilatie"
	OptZonwering            OptionKey = "zonwering"
	OptHorren               OptionKey = "horren"
	OptAirco                OptionKey = "airco"
	OptElektrischRolluik    OptionKey = "elektrisch_rolluik"
	OptRolluikVoorbereiding OptionKey = "rolluik_voorbereiding"
	OptKozijnVerwijderen    OptionKey = "kozijn_verwijderen"
	OptAfvalAfvoer          OptionKey = "afval_afvoer"
	OptVersteviging         OptionKey = "versteviging"
	OptKozijnpakket         OptionKey = "kozijnpakket"
	OptExtraIsolatie        OptionKey = "extra_isolatie"
	OptDakhellingMontage    OptionKey = "dakhelling_montage"
)

// OptionKeys is the fixed, ordered set of options.
var OptionKeys = []OptionKey{
	OptVentilatie,
	OptZonwering,
	OptHorren,
	OptAirco,
	OptElektrischRolluik,
	OptRolluikVoorbereiding,
	OptKozijnVerwijderen,
	OptAfvalAfvoer,
	OptVersteviging,
	OptKozijnpakket,
	OptExtraIsolatie,
	OptDakhellingMontage,
}

func (k OptionKey) Valid() bool {
	for _, o := range OptionKeys {
		if o == k {
			return true
		}
	}
	return false
}

func (k OptionKey) Label() string {
	switch k {
	case OptVentilatie:
		return "Ventilatieroosters"
	case OptZonwering:
		return "Zonwering"
	case OptHorren:
		return "Horren"
	case OptAirco:
		return "Airco"
	case OptElektrischRolluik:
		return "Elektrisch rolluik"
	case OptRolluikVoorbereiding:
		return "Voorbereiding rolluik"
	case OptKozijnVerwijderen:
		return "Bestaand kozijn verwijderen"
	case OptAfvalAfvoer:
		return "Afvoer bouwafval"
	case OptVersteviging:
		return "Versteviging constructie"
	case OptKozijnpakket:
		return "Kozijnpakket"
	case OptExtraIsolatie:
		return "Extra isolatie"
	case OptDakhellingMontage:
		return "Dakhelling montageset"
	}
	return string(k)
}

// Options is the fixed record of extras. Every key is a field so a merge
// can never drop one.
type Options struct {
	Ventilatie           bool `json:"ventilatie"`
	Zonwering            bool `json:"zonwering"`
	Horren               bool `json:"horren"`
	Airco                bool `json:"airco"`
	ElektrischRolluik    bool `json:"elektrisch_rolluik"`
	RolluikVoorbereiding bool `json:"rolluik_voorbereiding"`
	KozijnVerwijderen    bool `json:"kozijn_verwijderen"`
	AfvalAfvoer          bool `json:"afval_afvoer"`
	Versteviging         bool `json:"versteviging"`
	Kozijnpakket         bool `json:"kozijnpakket"`
	ExtraIsolatie        bool `json:"extra_isolatie"`
	DakhellingMontage    bool `json:"dakhelling_montage"`
}

// OptionsPatch carries only the options a step touched.
type OptionsPatch struct {
	Ventilatie           *bool `json:"ventilatie,omitempty"`
	Zonwering            *bool `json:"zonwering,omitempty"`
	Horren               *bool `json:"horren,omitempty"`
	Airco                *bool `json:"airco,omitempty"`
	ElektrischRolluik    *bool `json:"elektrisch_rolluik,omitempty"`
	RolluikVoorbereiding *bool `json:"rolluik_voorbereiding,omitempty"`
	KozijnVerwijderen    *bool `json:"kozijn_verwijderen,omitempty"`
	AfvalAfvoer          *bool `json:"afval_afvoer,omitempty"`
	Versteviging         *bool `json:"versteviging,omitempty"`
	Kozijnpakket         *bool `json:"kozijnpakket,omitempty"`
	ExtraIsolatie        *bool `json:"extra_isolatie,omitempty"`
	DakhellingMontage    *bool `json:"dakhelling_montage,omitempty"`
}

// Merge applies p on top of o, then evaluates the option rules.
func (o Options) Merge(p OptionsPatch) Options {
	mergeBool(&o.Ventilatie, p.Ventilatie)
	mergeBool(&o.Zonwering, p.Zonwering)
	mergeBool(&o.Horren, p.Horren)
	mergeBool(&o.Airco, p.Airco)
	mergeBool(&o.ElektrischRolluik, p.ElektrischRolluik)
	mergeBool(&o.RolluikVoorbereiding, p.RolluikVoorbereiding)
	mergeBool(&o.KozijnVerwijderen, p.KozijnVerwijderen)
	mergeBool(&o.AfvalAfvoer, p.AfvalAfvoer)
	mergeBool(&o.Versteviging, p.Versteviging)
	mergeBool(&o.Kozijnpakket, p.Kozijnpakket)
	mergeBool(&o.ExtraIsolatie, p.ExtraIsolatie)
	mergeBool(&o.DakhellingMontage, p.DakhellingMontage)
	return o.Normalize()
}

// Empty reports whether the patch touches no option.
func (p OptionsPatch) Empty() bool {
	return p == OptionsPatch{}
}

func mergeBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (o Options) Get(k OptionKey) bool {
	if f := o.Field(k); f != nil {
		return *f
	}
	return false
}

// Set returns a copy with k set to v. Unknown keys are ignored.
func (o Options) Set(k OptionKey, v bool) Options {
	if f := o.Field(k); f != nil {
		*f = v
	}
	return o
}

// Field returns a pointer to the flag for k, or nil for an unknown key.
func (o *Options) Field(k OptionKey) *bool {
	switch k {
	case OptVentilatie:
		return &o.Ventilatie
	case OptZonwering:
		return &o.Zonwering
	case OptHorren:
		return &o.Horren
	case OptAirco:
		return &o.Airco
	case OptElektrischRolluik:
		return &o.ElektrischRolluik
	case OptRolluikVoorbereiding:
		return &o.RolluikVoorbereiding
	case OptKozijnVerwijderen:
		return &o.KozijnVerwijderen
	case OptAfvalAfvoer:
		return &o.AfvalAfvoer
	case OptVersteviging:
		return &o.Versteviging
	case OptKozijnpakket:
		return &o.Kozijnpakket
	case OptExtraIsolatie:
		return &o.ExtraIsolatie
	case OptDakhellingMontage:
		return &o.DakhellingMontage
	}
	return nil
}

// Enabled lists the enabled options in OptionKeys order.
func (o Options) Enabled() []OptionKey {
	var out []OptionKey
	for _, k := range OptionKeys {
		if o.Get(k) {
			out = append(out, k)
		}
	}
	return out
}

// OptionRule declares how an option depends on others.
type OptionRule struct {
	// Implies lists options switched on whenever this one is on.
	Implies []OptionKey
	// PriceWaivedIf lists options that make this one free while any is on.
	PriceWaivedIf []OptionKey
}

// OptionRules is the declarative dependency table between options.
var OptionRules = map[OptionKey]OptionRule{
	OptElektrischRolluik: {
		Implies: []OptionKey{OptRolluikVoorbereiding},
	},
	OptRolluikVoorbereiding: {
		PriceWaivedIf: []OptionKey{OptElektrischRolluik},
	},
}

// Normalize applies every Implies rule until nothing changes.
func (o Options) Normalize() Options {
	for changed := true; changed; {
		changed = false
		for _, k := range OptionKeys {
			if !o.Get(k) {
				continue
			}
			for _, dep := range OptionRules[k].Implies {
				if !o.Get(dep) {
					o = o.Set(dep, true)
					changed = true
				}
			}
		}
	}
	return o
}

// PriceWaived reports whether k is free given the other enabled options.
func (o Options) PriceWaived(k OptionKey) bool {
	for _, cond := range OptionRules[k].PriceWaivedIf {
		if o.Get(cond) {
			return true
		}
	}
	return false
}
