package types

import "errors"

var (
	ErrInvalidGrid                  = errors.New("grid points must be strictly increasing")
	ErrPhaseTypeUnsupported         = errors.New("phase model must be an ideal gas")
	ErrEmissivityOutOfRange         = errors.New("emissivity must lie in [0,1]")
	ErrIncompatibleTransportClosure = errors.New("thermal diffusion requires a multicomponent transport closure")
	ErrUnknownFlowType              = errors.New("unknown flow type")
	ErrMissingCollaborator          = errors.New("kinetics or transport model not set")
	ErrStateMismatch                = errors.New("state does not match the flow domain")
	ErrUnknownComponent             = errors.New("unknown component")
)
