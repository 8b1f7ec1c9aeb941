// Package harness checks solvers against YAML worksheets.
//
// A worksheet is a list of problems, each naming a solver (by name or menu
// key), an input line and what the answer must look like:
//
//	name: number-theory
//	description: Congruences and CRT
//	problems:
//	  - name: crt-classic
//	    solver: crt
//	    input: "2 3 3 5 2 7"
//	    expect:
//	      ok: true
//	      contains: ["The smallest positive solution is: 23"]
//	      steps:
//	        - op: smallest
//	          result: "23"
//
// Run solves every problem through a dispatcher with a deterministic clock,
// records each run in a store (an in-memory one unless the caller supplies
// a store) and evaluates the expectations. RunWithGolden additionally
// compares the transcript of all rendered answers with a golden file under
// testdata/golden.
package harness
