package cmd

import (
	"flag"
	"maps"
	"slices"
	"strconv"

	"github.com/etnz/younginvestor"
	"github.com/etnz/younginvestor/content"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// argPredictors completes the positional arguments of the subcommands that
// take some.
func argPredictors() map[string]complete.Predictor {
	instruments := make(predict.Set, 0, len(younginvestor.Instruments))
	for _, i := range younginvestor.Instruments {
		instruments = append(instruments, string(i))
	}
	var lessons predict.Set
	for _, id := range content.Lessons() {
		lessons = append(lessons, strconv.Itoa(id))
	}
	var rounds predict.Set
	if c, err := younginvestor.DefaultCatalog(); err == nil {
		for _, r := range c.Rounds() {
			rounds = append(rounds, strconv.Itoa(r))
		}
	}
	return map[string]complete.Predictor{
		string(younginvestor.Buy):  instruments,
		string(younginvestor.Sell): instruments,
		"round":                    rounds,
		"lesson":                   lessons,
		"quiz":                     predict.Set(content.Quizzes()),
		"complete":                 predict.Set(slices.Sorted(maps.Keys(completeEvents))),
		"flow":                     predict.Set{"next", "previous", "goto"},
		"shop":                     predict.Set{"buy"},
	}
}

// Completion returns the shell completion of the commands registered in c.
func Completion(c *subcommands.Commander) *complete.Command {
	args := argPredictors()
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"store": predict.Something,
			"slot":  predict.Something,
			"v":     predict.Nothing,
		},
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cmd := &complete.Command{Flags: map[string]complete.Predictor{}, Args: args[sub.Name()]}
		fs.VisitAll(func(f *flag.Flag) {
			cmd.Flags[f.Name] = flagPredictor(f)
		})
		root.Sub[sub.Name()] = cmd
	})
	return root
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	if f.Name == "lang" {
		return predict.Set{string(younginvestor.Hebrew), string(younginvestor.English)}
	}
	return predict.Something
}
