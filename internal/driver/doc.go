// Package driver runs a prompt-driven child process through a scripted
// question and answer session. A Script is an ordered list of (pattern,
// response) steps consumed strictly in order: response i is written only after
// the child's output matched pattern i. Once the script is exhausted the
// session can hand the terminal over to the child until it exits.
package driver
