// Package mocks holds shared test doubles for the content-side interfaces.
//
// MockGenerator stands in for generation.Generator and records every request
// it receives. MockSource is a testify mock of pool.Source, so tests declare
// the worlds they expect to be asked for:
//
//	src := &mocks.MockSource{}
//	src.On("World", mock.Anything, "animals").Return(world, nil)
//
// Mocks of service.GameService are defined in the api tests that use them;
// the service package's own tests import this package.
package mocks
