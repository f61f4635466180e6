// Package fsi holds the fluid-structure interaction settings of a case: the
// ALE coupling parameters and the per-boundary structure couplings.
package fsi

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/notargets/casemodel/schema"
	"github.com/notargets/casemodel/xmlcase"
)

const (
	aleTag                         = "ale_method"
	maxIterationsTag               = "max_iterations_implicit"
	precisionTag                   = "implicitation_precision"
	displacementPredictionAlphaTag = "displacement_prediction_alpha"
	displacementPredictionBetaTag  = "displacement_prediction_beta"
	stressPredictionAlphaTag       = "stress_prediction_alpha"
	monitorPointSyncTag            = "monitor_point_synchronisation"
	postSyncTag                    = "external_coupling_post_synchronization"
)

// Defaults written the first time a parameter is read.
const (
	DefaultMaxIterations               = 1
	DefaultPrecision                   = 1e-5
	DefaultDisplacementPredictionAlpha = 0.5
	DefaultDisplacementPredictionBeta  = 0.
	DefaultStressPredictionAlpha       = 2.
)

var ErrInvalid = errors.New("invalid fluid-structure parameter")

// Model edits the ALE method node and the boundary couplings of a case.
// Getters create missing parameters with their default value.
type Model struct {
	ale   *xmlcase.Node
	bc    *xmlcase.Node
	nodes schema.NodeAccessor
	Log   logrus.FieldLogger
}

func New(c *xmlcase.Case) *Model {
	m := &Model{
		ale:   c.Models().Ensure(aleTag),
		bc:    c.Ensure("boundary_conditions"),
		nodes: xmlcase.Tree{},
		Log:   logrus.StandardLogger(),
	}
	if !m.ale.Has("status") {
		m.ale.SetStatus(false)
	}
	return m
}

func (m *Model) Enabled() bool { return m.ale.Status() }

func (m *Model) SetEnabled(on bool) { m.ale.SetStatus(on) }

func (m *Model) param(tag, dflt string) *xmlcase.Node {
	n := m.nodes.Ensure(m.ale, tag)
	if n.Text() == "" {
		n.SetText(dflt)
		m.Log.WithFields(logrus.Fields{"tag": tag, "value": dflt}).Debug("initialised ALE parameter")
	}
	return n
}

func (m *Model) status(tag string) *xmlcase.Node {
	n := m.nodes.Ensure(m.ale, tag)
	if !n.Has("status") {
		n.SetStatus(false)
	}
	return n
}

// MaxIterations is the number of implicit sub-iterations of the coupling (NALIMX).
func (m *Model) MaxIterations() int {
	return m.param(maxIterationsTag, cast.ToString(DefaultMaxIterations)).Int(DefaultMaxIterations)
}

func (m *Model) SetMaxIterations(n int) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalid, "max iterations %d must be at least 1", n)
	}
	m.param(maxIterationsTag, cast.ToString(DefaultMaxIterations)).SetInt(n)
	return nil
}

// Precision is the convergence threshold of the implicit coupling (EPALIM).
func (m *Model) Precision() float64 {
	return m.param(precisionTag, formatFloat(DefaultPrecision)).Float(DefaultPrecision)
}

func (m *Model) SetPrecision(eps float64) error {
	if eps <= 0 {
		return errors.Wrapf(ErrInvalid, "precision %g must be positive", eps)
	}
	m.param(precisionTag, formatFloat(DefaultPrecision)).SetFloat(eps)
	return nil
}

func (m *Model) nonNegative(tag string, dflt float64) float64 {
	return m.param(tag, formatFloat(dflt)).Float(dflt)
}

func (m *Model) setNonNegative(tag string, dflt, v float64) error {
	if v < 0 {
		return errors.Wrapf(ErrInvalid, "%s %g must not be negative", tag, v)
	}
	m.param(tag, formatFloat(dflt)).SetFloat(v)
	return nil
}

func (m *Model) DisplacementPredictionAlpha() float64 {
	return m.nonNegative(displacementPredictionAlphaTag, DefaultDisplacementPredictionAlpha)
}

func (m *Model) SetDisplacementPredictionAlpha(v float64) error {
	return m.setNonNegative(displacementPredictionAlphaTag, DefaultDisplacementPredictionAlpha, v)
}

func (m *Model) DisplacementPredictionBeta() float64 {
	return m.nonNegative(displacementPredictionBetaTag, DefaultDisplacementPredictionBeta)
}

func (m *Model) SetDisplacementPredictionBeta(v float64) error {
	return m.setNonNegative(displacementPredictionBetaTag, DefaultDisplacementPredictionBeta, v)
}

func (m *Model) StressPredictionAlpha() float64 {
	return m.nonNegative(stressPredictionAlphaTag, DefaultStressPredictionAlpha)
}

func (m *Model) SetStressPredictionAlpha(v float64) error {
	return m.setNonNegative(stressPredictionAlphaTag, DefaultStressPredictionAlpha, v)
}

func (m *Model) MonitorPointSynchronisation() bool { return m.status(monitorPointSyncTag).Status() }

func (m *Model) SetMonitorPointSynchronisation(on bool) { m.status(monitorPointSyncTag).SetStatus(on) }

func (m *Model) ExternalCouplingPostSynchronization() bool { return m.status(postSyncTag).Status() }

func (m *Model) SetExternalCouplingPostSynchronization(on bool) {
	m.status(postSyncTag).SetStatus(on)
}
