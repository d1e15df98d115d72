package steps

import "github.com/datachef/datachef/internal/recipe"

// Package is the namespace the built-in steps register under.
const Package = "datachef"

func init() {
	register := func(category, typeName string, factory recipe.StepFactory) {
		recipe.RegisterStep(Package, category, typeName, factory)
	}

	register("processing", "ProcessingStep", func() recipe.Step { return NewProcessing() })
	register("processing", "Normalisation", func() recipe.Step { return NewNormalisation() })
	register("processing", "Scaling", func() recipe.Step { return NewScaling() })
	register("processing", "BaselineCorrection", func() recipe.Step { return NewBaselineCorrection() })

	register("singleanalysis", "BasicCharacteristics", func() recipe.Step { return NewBasicCharacteristics() })
	register("singleanalysis", "BasicStatistics", func() recipe.Step { return NewBasicStatistics() })
	register("multianalysis", "AggregateStatistics", func() recipe.Step { return NewAggregateStatistics() })

	register("annotation", "Comment", func() recipe.Step { return NewComment() })

	register("singleplot", "SinglePlotter", func() recipe.Step { return NewSinglePlotter() })
	register("multiplot", "MultiPlotter", func() recipe.Step { return NewMultiPlotter() })

	register("model", "Polynomial", func() recipe.Step { return NewPolynomial() })
	register("model", "Zeros", func() recipe.Step { return NewZeros() })
	register("model", "Ones", func() recipe.Step { return NewOnes() })

	register("report", "Reporter", func() recipe.Step { return NewReporter() })
}
