// Package modules contains the dashboard sections.
//
// Each subdirectory is a module implementing `module.Module` and publishing a
// `dashboard.View` under its section key. Modules are listed in
// `internal/app/modules.go` and mounted under /dashboard/<name> by the server.
package modules
