//go:build !darwin

package provider

import pkgerrors "github.com/pkg/errors"

func newSMCProvider() (PowerSourceProvider, error) {
	return nil, pkgerrors.Wrap(ErrUnsupported, NameSMC)
}
