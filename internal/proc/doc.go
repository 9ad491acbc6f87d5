// Package proc is the process-invocation seam used for every external program
// cargo-binutils talks to: cargo, rustc and the LLVM tools.
//
// Production code uses ExecRunner. Tests substitute proctest.Runner, which
// replays scripted stdout and exit statuses without spawning anything.
package proc
