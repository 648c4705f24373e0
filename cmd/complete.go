package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands registered by Register for shell completion.
func Completion() *complete.Command {
	none := &complete.Command{}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Or(predict.Files("*.toml"), predict.Files("*.yaml"), predict.Files("*.yml")),
		},
		Sub: map[string]*complete.Command{
			"run":     none,
			"fetch":   none,
			"convert": none,
			"value":   none,
			"export":  none,
			"summary": {
				Flags: map[string]complete.Predictor{
					"ai":   predict.Nothing,
					"save": predict.Nothing,
				},
			},
			"topic":    {Args: predict.Set{"configuration", "pipeline", "reports", "*"}},
			"help":     none,
			"flags":    none,
			"commands": none,
		},
	}
}
