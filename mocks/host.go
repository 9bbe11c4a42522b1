package mocks

import (
	"github.com/stretchr/testify/mock"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/sandbox"
)

var _ sandbox.Host = (*MockHost)(nil)

// MockHost is a minimal mock for sandbox.Host
type MockHost struct {
	mock.Mock
}

// Sandbox implements sandbox.Host.
func (m *MockHost) Sandbox(funcNr int32, params []byte) ([]byte, error) {
	args := m.Called(funcNr, params)
	res, _ := args.Get(0).([]byte)
	return res, args.Error(1)
}

// StateDelete implements sandbox.Host.
func (m *MockHost) StateDelete(key []byte) error {
	args := m.Called(key)
	return args.Error(0)
}

// StateExists implements sandbox.Host.
func (m *MockHost) StateExists(key []byte) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

// StateGet implements sandbox.Host.
func (m *MockHost) StateGet(key []byte) ([]byte, error) {
	args := m.Called(key)
	res, _ := args.Get(0).([]byte)
	return res, args.Error(1)
}

// StateSet implements sandbox.Host.
func (m *MockHost) StateSet(key []byte, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}
