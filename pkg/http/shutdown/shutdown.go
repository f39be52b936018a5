// Package shutdown runs registered callbacks once any of its managers reports
// a shutdown request.
package shutdown

import (
	"sync"
)

// Callback is invoked when shutdown is requested. shutdownManager is the name
// of the manager that triggered it.
type Callback interface {
	OnShutdown(shutdownManager string) error
}

// Func is a helper type so plain functions can be used as callbacks.
type Func func(string) error

// OnShutdown defines the action needed to run when shutdown triggered.
func (f Func) OnShutdown(shutdownManager string) error {
	return f(shutdownManager)
}

// Manager listens for a shutdown trigger, e.g. a posix signal.
type Manager interface {
	GetName() string
	Start(gs GSInterface) error
	ShutdownStart() error
	ShutdownFinish() error
}

// ErrorHandler receives callback errors.
type ErrorHandler interface {
	OnError(err error)
}

// ErrorFunc is a helper type so plain functions can be used as ErrorHandler.
type ErrorFunc func(err error)

// OnError defines the action needed to run when error occurred.
func (f ErrorFunc) OnError(err error) {
	f(err)
}

// GSInterface is the part of GracefulShutdown exposed to managers.
type GSInterface interface {
	StartShutdown(sm Manager)
	ReportError(err error)
	AddShutdownCallback(callback Callback)
}

// GracefulShutdown is the main struct that handles callbacks and managers.
type GracefulShutdown struct {
	callbacks    []Callback
	managers     []Manager
	errorHandler ErrorHandler
	once         sync.Once
}

// New initializes GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{}
}

// Start calls Start on all added managers.
func (gs *GracefulShutdown) Start() error {
	for _, manager := range gs.managers {
		if err := manager.Start(gs); err != nil {
			return err
		}
	}

	return nil
}

// AddShutdownManager adds a Manager that will listen to shutdown requests.
func (gs *GracefulShutdown) AddShutdownManager(manager Manager) {
	gs.managers = append(gs.managers, manager)
}

// AddShutdownCallback adds a Callback that will be called when shutdown is requested.
func (gs *GracefulShutdown) AddShutdownCallback(callback Callback) {
	gs.callbacks = append(gs.callbacks, callback)
}

// SetErrorHandler sets an ErrorHandler that will be called when an error
// is encountered in a Callback or a Manager.
func (gs *GracefulShutdown) SetErrorHandler(errorHandler ErrorHandler) {
	gs.errorHandler = errorHandler
}

// StartShutdown runs all callbacks concurrently and waits for them. It runs at
// most once per GracefulShutdown.
func (gs *GracefulShutdown) StartShutdown(sm Manager) {
	gs.once.Do(func() {
		gs.ReportError(sm.ShutdownStart())

		var wg sync.WaitGroup
		for _, callback := range gs.callbacks {
			wg.Add(1)
			go func(callback Callback) {
				defer wg.Done()
				gs.ReportError(callback.OnShutdown(sm.GetName()))
			}(callback)
		}
		wg.Wait()

		gs.ReportError(sm.ShutdownFinish())
	})
}

// ReportError forwards err to the error handler, if one is set.
func (gs *GracefulShutdown) ReportError(err error) {
	if err != nil && gs.errorHandler != nil {
		gs.errorHandler.OnError(err)
	}
}
