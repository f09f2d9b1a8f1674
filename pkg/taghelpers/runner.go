package taghelpers

import (
	"cmp"
	"context"
	"fmt"
	"slices"
)

// Runner runs the tag helpers of one occurrence. The zero value is ready
// to use.
type Runner struct{}

// Run initializes every tag helper, then processes them in Order. The
// first failing tag helper stops the run.
func (Runner) Run(ctx context.Context, ec *ExecutionContext) error {
	helpers := slices.Clone(ec.TagHelpers())
	slices.SortStableFunc(helpers, func(a, b TagHelper) int {
		return cmp.Compare(order(a), order(b))
	})

	for _, th := range helpers {
		if initializer, ok := th.(Initializer); ok {
			initializer.Init(ec.Context())
		}
	}
	for _, th := range helpers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := th.Process(ctx, ec.Context(), ec.Output()); err != nil {
			return fmt.Errorf("<%s> %T: %w", ec.Context().TagName, th, err)
		}
	}
	return nil
}

func order(th TagHelper) int {
	if o, ok := th.(Orderer); ok {
		return o.Order()
	}
	return 0
}
