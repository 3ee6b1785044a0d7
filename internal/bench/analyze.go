package bench

import (
	"fmt"
	"io"
	"sort"

	apperrors "github.com/agbru/ecurve/internal/errors"
)

// AnalyzeResults sorts results by speed, prints the comparison table and
// checks that every successful strategy produced the same digest. It returns
// the process exit code.
func AnalyzeResults(results []Result, verbose bool, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var fastest *Result
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		if fastest == nil {
			fastest = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if fastest == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy completed the benchmark.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Digest != fastest.Digest {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Strategies %s and %s produced different products.\n", fastest.Name, res.Name)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All strategies agree.\n")
	presenter.PresentResult(*fastest, verbose, out)
	return apperrors.ExitSuccess
}
