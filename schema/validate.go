package schema

import (
	"fmt"

	"github.com/notargets/casemodel/xmlcase"
)

// Warning is a validation finding. Findings never stop a load: the case
// stays editable and the user decides what to fix.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Path, w.Message) }

// Check inspects one area of the document.
type Check func(c *xmlcase.Case) []Warning

// Validate runs the turbulence check and then every extra check in order.
func Validate(c *xmlcase.Case, checks ...Check) (warnings []Warning) {
	for _, check := range append([]Check{CheckTurbulence}, checks...) {
		warnings = append(warnings, check(c)...)
	}
	return
}

// CheckTurbulence reports an unset or unknown model and nodes belonging
// to a model other than the selected one.
func CheckTurbulence(c *xmlcase.Case) (warnings []Warning) {
	turb := c.Models().Find(TurbulenceTag)
	if turb == nil {
		return []Warning{{Path: c.Models().Path(), Message: "missing <turbulence> node"}}
	}
	value := turb.Get("model")
	switch tm := ParseTurbulenceModel(value); tm {
	case TurbUnset:
		warnings = append(warnings, Warning{Path: turb.Path(), Message: "no turbulence model selected"})
	case TurbUnrecognized:
		warnings = append(warnings, Warning{
			Path:    turb.Path(),
			Message: fmt.Sprintf("unrecognized turbulence model %q", value),
		})
		return
	}
	for _, n := range turbulenceGate.Stale(turb, value) {
		warnings = append(warnings, Warning{
			Path:    n.Path(),
			Message: fmt.Sprintf("%s %q is not used by turbulence model %q", n.Tag(), n.Get("name"), value),
		})
	}
	return
}
