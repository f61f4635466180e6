package schema

// TurbulenceModel is the closed set of turbulence closures the solver accepts.
type TurbulenceModel uint8

const (
	TurbUnset TurbulenceModel = iota
	TurbKEpsilon
	TurbKEpsilonPL
	TurbRijEpsilon
	TurbRijSSG
	TurbV2fPhi
	TurbKOmegaSST
	TurbMixingLength
	TurbLESSmagorinsky
	TurbLESDynamique
	TurbUnrecognized
	numTurbulenceModels
)

// Attribute values as written in the case file; the solver reads these verbatim.
var turbulenceValues = [numTurbulenceModels]string{
	TurbUnset:          "",
	TurbKEpsilon:       "k-epsilon",
	TurbKEpsilonPL:     "k-epsilon-PL",
	TurbRijEpsilon:     "Rij-epsilon",
	TurbRijSSG:         "Rij-SSG",
	TurbV2fPhi:         "v2f-phi",
	TurbKOmegaSST:      "k-omega-SST",
	TurbMixingLength:   "mixing_length",
	TurbLESSmagorinsky: "LES_Smagorinsky",
	TurbLESDynamique:   "LES_dynamique",
	TurbUnrecognized:   "unrecognized",
}

func (m TurbulenceModel) String() string {
	if m >= numTurbulenceModels {
		return turbulenceValues[TurbUnrecognized]
	}
	return turbulenceValues[m]
}

// Selectable reports whether m can be written to a case.
func (m TurbulenceModel) Selectable() bool {
	return m > TurbUnset && m < TurbUnrecognized
}

// IsLES reports whether m is a large-eddy simulation model.
func (m TurbulenceModel) IsLES() bool {
	return m == TurbLESSmagorinsky || m == TurbLESDynamique
}

// ParseTurbulenceModel maps an attribute value to the enumeration. Unknown
// values map to TurbUnrecognized; the empty value maps to TurbUnset.
func ParseTurbulenceModel(value string) TurbulenceModel {
	for m := TurbUnset; m < TurbUnrecognized; m++ {
		if turbulenceValues[m] == value {
			return m
		}
	}
	return TurbUnrecognized
}

// TurbulenceModels lists the selectable models in display order.
func TurbulenceModels() (models []TurbulenceModel) {
	for m := TurbKEpsilon; m < TurbUnrecognized; m++ {
		models = append(models, m)
	}
	return
}

var (
	rijVariables = []string{
		"component_R11", "component_R22", "component_R33",
		"component_R12", "component_R13", "component_R23",
		"turb_eps",
	}
	turbulenceVariables = [numTurbulenceModels][]string{
		TurbKEpsilon:   {"turb_k", "turb_eps"},
		TurbKEpsilonPL: {"turb_k", "turb_eps"},
		TurbRijEpsilon: rijVariables,
		TurbRijSSG:     rijVariables,
		TurbV2fPhi:     {"turb_k", "turb_eps", "turb_phi", "turb_fb"},
		TurbKOmegaSST:  {"turb_k", "turb_omega"},
	}
	turbulenceProperties = [numTurbulenceModels][]string{
		TurbMixingLength:   {"turb_viscosity"},
		TurbKEpsilon:       {"turb_viscosity"},
		TurbKEpsilonPL:     {"turb_viscosity"},
		TurbKOmegaSST:      {"turb_viscosity"},
		TurbV2fPhi:         {"turb_viscosity"},
		TurbRijEpsilon:     {"turb_viscosity"},
		TurbRijSSG:         {"turb_viscosity"},
		TurbLESSmagorinsky: {"smagorinsky_constant"},
		TurbLESDynamique:   {"smagorinsky_constant"},
	}
	defaultLabels = map[string]string{
		"turb_k":               "TurbEner",
		"turb_eps":             "Dissip",
		"turb_omega":           "omega",
		"turb_phi":             "phi",
		"turb_fb":              "fb",
		"component_R11":        "R11",
		"component_R22":        "R22",
		"component_R33":        "R33",
		"component_R12":        "R12",
		"component_R13":        "R13",
		"component_R23":        "R23",
		"turb_viscosity":       "TurbVisc",
		"smagorinsky_constant": "Csdyn2",
	}
)

// Variables returns the names of the solved variables m requires, in display order.
func (m TurbulenceModel) Variables() []string {
	if m >= numTurbulenceModels {
		return nil
	}
	return turbulenceVariables[m]
}

// Properties returns the names of the physical properties m requires.
func (m TurbulenceModel) Properties() []string {
	if m >= numTurbulenceModels {
		return nil
	}
	return turbulenceProperties[m]
}

const (
	TurbulenceTag = "turbulence"
	VariableTag   = "variable"
	PropertyTag   = "property"
)

// turbulenceGate lists variables before properties for each model.
var turbulenceGate = newTurbulenceGate()

func newTurbulenceGate() *Gate {
	var (
		values []string
		sets   = make(map[string][]Dependent)
	)
	for _, m := range TurbulenceModels() {
		var deps []Dependent
		for _, name := range m.Variables() {
			deps = append(deps, Dependent{Tag: VariableTag, Name: name, Label: defaultLabels[name]})
		}
		for _, name := range m.Properties() {
			deps = append(deps, Dependent{Tag: PropertyTag, Name: name, Label: defaultLabels[name]})
		}
		values = append(values, m.String())
		sets[m.String()] = deps
	}
	return NewGate("model", values, sets)
}

// TurbulenceGate exposes the turbulence node table.
func TurbulenceGate() *Gate { return turbulenceGate }
