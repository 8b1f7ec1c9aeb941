// Package dispatch selects a solver by menu number or name and runs it.
//
// The Dispatcher is the only place that turns a solver run into text. It
// stamps every run with a sequence number from a logical clock, recovers
// panics into a warning string and logs one structured record per run:
//
//	level=INFO msg="solver finished" seq=3 solver=crt input="2 3 3 5" ok=true duration=41µs
//
// Menu keys follow the classic order: 1 congruence, 2 crt, 3 cubic,
// 4 multiplier, 5 sturm, 6 trig, 7 algebra, 8 division, 9 quadratic and
// 0 to exit.
package dispatch
