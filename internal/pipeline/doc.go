// Package pipeline streams FASTA records through a pool of design workers
// and hands the results back in input order.
//
// The work function is the only contract, which keeps the pipeline
// independent of the design engine and easy to test.
package pipeline
