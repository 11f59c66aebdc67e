//go:build darwin

// Package smc reads power related keys from the Apple System Management
// Controller. It never writes to the SMC.
package smc

import (
	"sync"

	"github.com/charlie0129/gosmc"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Reader is a read-only wrapper of gosmc.Connection.
type Reader struct {
	mu   sync.Mutex
	conn gosmc.Connection
	open bool
}

// New returns a Reader backed by the real SMC.
func New() *Reader {
	return &Reader{
		conn: gosmc.New(),
	}
}

// NewMock returns a Reader backed by a mocked SMC prefilled with values.
func NewMock(prefillValues map[string][]byte) *Reader {
	conn := gosmc.NewMockConnection()

	for key, value := range prefillValues {
		err := conn.Write(key, value)
		if err != nil {
			panic(err)
		}
	}

	return &Reader{
		conn: conn,
	}
}

// Open opens the connection. Opening an open Reader is a no-op.
func (r *Reader) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.open {
		return nil
	}
	if err := r.conn.Open(); err != nil {
		return pkgerrors.Wrap(err, "failed to open smc connection")
	}
	r.open = true

	return nil
}

// Close closes the connection.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return nil
	}
	r.open = false

	return r.conn.Close()
}

// Read reads a raw value from the SMC.
func (r *Reader) Read(key string) (gosmc.SMCVal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"key": key,
	}).Trace("Trying to read from SMC")

	v, err := r.conn.Read(key)
	if err != nil {
		return v, pkgerrors.Wrapf(err, "failed to read smc key %s", key)
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
		"val": v,
	}).Trace("Load from SMC succeed")

	return v, nil
}
