// Package analysis measures how far a simulated state is from a reference.
//
// The reference is usually either an analytical solution or the initial
// state of a closed orbit, which should be recovered after one period:
//
//	report, err := analysis.Accuracy(res.Final, reference)
//	fmt.Printf("max %.4g%% mean %.4g%%\n", report.Max, report.Mean)
//
// Components whose reference value is exactly zero have no defined
// percentage error and are skipped.
package analysis
