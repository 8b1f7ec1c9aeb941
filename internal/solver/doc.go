// Package solver holds the nine problem solvers behind the menu.
//
// Each solver parses one line of input, records its working as
// explain.Step values and supplies the templates that turn those steps into
// the text a student reads. Solvers share nothing but Options.
package solver
