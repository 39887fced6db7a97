package cmd

// this file builds the shell completion tree.

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completer returns the completion tree for the application, derived from the
// registered subcommands so it never drifts from the real flags.
// `COMP_INSTALL=1 vfl` installs it for the current shell.
func Completer() *complete.Command {
	sub := make(map[string]*complete.Command, len(Commands))
	for _, c := range Commands {
		sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(c),
			Args:  argPredictor(c.Name()),
		}
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"fund-dir":         predict.Dirs("*"),
			"default-currency": predict.Something,
			"v":                predict.Nothing,
		},
	}
}

// flagPredictors registers the command's flags on a scratch flag set and
// derives a predictor for each.
func flagPredictors(c subcommands.Command) map[string]complete.Predictor {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)

	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(fl *flag.Flag) {
		m[fl.Name] = flagPredictor(fl)
	})
	return m
}

func flagPredictor(fl *flag.Flag) complete.Predictor {
	// Boolean flags take no value.
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "fee-basis":
		return predict.Set{"committed", "called", "invested", "drawn", "fmv", "nav"}
	case "from", "o":
		return predict.Files("*")
	}
	return predict.Something
}

func argPredictor(name string) complete.Predictor {
	switch name {
	case "topic":
		topics, err := docs.GetAllTopics()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(append(topics, "readme"))
	case "check":
		return predict.Files("*.json")
	}
	return predict.Nothing
}
