package types

import (
	"fmt"
	"strings"
)

//go:generate stringer -type=FlowType

type FlowType uint8

const (
	FreeFlow FlowType = iota
	AxisymmetricStagnation
	PorousMedia
)

var FlowNameMap = map[string]FlowType{
	"free":                    FreeFlow,
	"freeflow":                FreeFlow,
	"free flame":              FreeFlow,
	"axisymmetric":            AxisymmetricStagnation,
	"stagnation":              AxisymmetricStagnation,
	"axisymmetric stagnation": AxisymmetricStagnation,
	"porous":                  PorousMedia,
	"porous flow":             PorousMedia,
	"porousmedia":             PorousMedia,
}

var FlowPrintNames = []string{
	"Free Flame",
	"Axisymmetric Stagnation",
	"Porous Flow",
}

// Name returns the descriptive name used in state files.
func (ft FlowType) Name() (name string, err error) {
	if int(ft) >= len(FlowPrintNames) {
		err = fmt.Errorf("flow type %d: %w", ft, ErrUnknownFlowType)
		return
	}
	name = FlowPrintNames[ft]
	return
}

func (ft FlowType) Print() string {
	name, err := ft.Name()
	if err != nil {
		return fmt.Sprintf("Unknown(%d)", ft)
	}
	return name
}

func NewFlowType(label string) (ft FlowType, err error) {
	var (
		ok bool
	)
	if ft, ok = FlowNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("flow type %q: %w", label, ErrUnknownFlowType)
	}
	return
}
