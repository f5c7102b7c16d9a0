// Package mongodb provides the primary document store client for the module.
//
// It wraps the official MongoDB Go driver with the same shape as the other
// store packages here: a Config with env/yaml bindings and builder helpers, a
// constructor that fails fast on connectivity problems, sentinel errors with
// TranslateError, and an Fx module handling lifecycle.
//
// The connection is created once at process start and shared by every
// repository; there is no per-request setup or teardown.
package mongodb
