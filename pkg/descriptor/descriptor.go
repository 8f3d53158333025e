package descriptor

import (
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"

	"github.com/pez-cli/pez/pkg/cfgerr"
	"github.com/pez-cli/pez/pkg/cli"
	"github.com/pez-cli/pez/pkg/config"
	"github.com/pez-cli/pez/pkg/expression"
	"github.com/pez-cli/pez/pkg/logger"
	"github.com/pez-cli/pez/pkg/regex"
	"github.com/pez-cli/pez/pkg/selection"
	"github.com/pez-cli/pez/pkg/xmltree"
)

const ElementApplication = "Application"

type Descriptor struct {
	Name        string
	Path        string
	Expressions map[string]*expression.Evaluated
	Arguments   *cli.Arguments
	Commands    []*cli.Command
}

var (
	log = logger.GetLogger("descriptor")
)

// ExpressionOptions derives the expression builder options from cfg.
func ExpressionOptions(cfg *config.Configuration) (expression.Options, error) {
	flags, err := regex.ParseOptions(cfg.Regex.Options)
	if err != nil {
		return expression.Options{}, errors.Wrap(err, "regex options")
	}

	return expression.Options{
		ID: cfg.Builder.ID,
		Regex: regex.Options{
			Flags:        flags,
			MatchTimeout: cfg.Regex.MatchTimeout,
		},
	}, nil
}

func CliOptions(cfg *config.Configuration) cli.Options {
	return cli.Options{
		ID:       cfg.Builder.ID,
		Recurse:  cfg.Builder.Recurse,
		Discards: cfg.Builder.Discards,
	}
}

func Load(path string, cfg *config.Configuration) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open descriptor")
	}
	defer f.Close()

	d, err := LoadReader(f, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	d.Path = path
	return d, nil
}

// LoadReader parses an application descriptor and builds its fully evaluated
// expressions and, when a Cli element is present, its arguments and commands.
func LoadReader(r io.Reader, cfg *config.Configuration) (*Descriptor, error) {
	doc, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}

	app, err := selection.SelectFirst("/"+ElementApplication, doc)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, cfgerr.New("", "no <%s> root element", ElementApplication)
	}

	expOpts, err := ExpressionOptions(cfg)
	if err != nil {
		return nil, err
	}

	expressions, err := expression.NewBuilder(expOpts).BuildExpressions(app)
	if err != nil {
		return nil, err
	}

	evaluated, err := expression.EvaluateAll(expressions, expOpts)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{
		Name:        app.SelectAttr(cfg.Builder.ID),
		Expressions: evaluated,
	}

	if err := loadCli(d, app, cfg); err != nil {
		return nil, err
	}

	log.Debugf("Loaded %q: %d expressions, %d commands", d.Name, len(d.Expressions), len(d.Commands))
	return d, nil
}

func loadCli(d *Descriptor, app *xmlquery.Node, cfg *config.Configuration) error {
	cliNode, err := selection.SelectFirst(cli.ElementCli, app)
	if err != nil || cliNode == nil {
		return err
	}

	b := cli.NewBuilder(CliOptions(cfg))

	d.Arguments = &cli.Arguments{ByName: make(map[string]*cli.Argument)}
	argumentsNode, err := selection.SelectFirst(cli.ElementArguments, cliNode)
	if err != nil {
		return err
	}
	if argumentsNode != nil {
		if d.Arguments, err = b.BuildArguments(argumentsNode); err != nil {
			return err
		}
	}

	commandsNode, err := selection.SelectFirst(cli.ElementCommands, cliNode)
	if err != nil || commandsNode == nil {
		return err
	}

	if d.Commands, err = b.BuildCommands(commandsNode); err != nil {
		return err
	}
	for _, command := range d.Commands {
		if err := b.Normalise(command, d.Arguments); err != nil {
			return err
		}
	}

	return nil
}
