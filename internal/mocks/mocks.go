// Package mocks holds testify mocks for the service-layer ports.
package mocks

import "github.com/stretchr/testify/mock"

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}
