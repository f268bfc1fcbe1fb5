package adapter

import (
	"fmt"
	"regexp"
	"strings"

	goflags "github.com/jessevdk/go-flags"
	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/internal/util"
	"github.com/kapu/movie-picker-go/pkg/errors"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x08\x0B-\x1F\x7F]`)

// Parameter keys of ParsedCommand.Params.
const (
	ParamPath   = "path"
	ParamKey    = "key"
	ParamFilter = "filter"
	ParamOutput = "output"
)

// MessageAdapter converts input lines to picker commands
type MessageAdapter struct{}

func NewMessageAdapter() *MessageAdapter {
	return &MessageAdapter{}
}

// ParsedCommand represents a parsed command
type ParsedCommand struct {
	Type       domain.CommandType
	Params     map[string]any
	RawMessage string
}

type pickOptions struct {
	Type    string `long:"type" short:"t" description:"Title type to match exactly"`
	Genre   string `long:"genre" short:"g" description:"Genre substring to match"`
	Keyword string `long:"keyword" short:"k" description:"Keyword searched in title, genres and directors"`
	From    int    `long:"from" description:"First year, inclusive" default:"1900"`
	To      int    `long:"to" description:"Last year, inclusive" default:"2025"`
}

// ParseMessage parses one input line. Blank and unrecognized lines yield a
// CommandUnknown; malformed arguments yield an error.
func (ma *MessageAdapter) ParseMessage(line string) (*ParsedCommand, error) {
	text := strings.TrimSpace(controlCharsPattern.ReplaceAllString(line, ""))
	if text == "" {
		return ma.createUnknownCommand(""), nil
	}

	parts, err := util.SplitFields(text)
	if err != nil {
		return nil, errors.NewValidationError(err.Error(), "input", text)
	}
	if len(parts) == 0 {
		return ma.createUnknownCommand(text), nil
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "load", "open":
		path := strings.TrimSpace(strings.Join(args, " "))
		if path == "" {
			return nil, errors.NewValidationError("a CSV path is required", ParamPath, "")
		}
		return ma.newCommand(domain.CommandLoad, text, map[string]any{ParamPath: path}), nil

	case "pick", "random":
		spec, err := ma.parsePickArgs(args)
		if err != nil {
			return nil, err
		}
		return ma.newCommand(domain.CommandPick, text, map[string]any{ParamFilter: spec}), nil

	case "next", "again":
		return ma.newCommand(domain.CommandNext, text, nil), nil

	case "key", "apikey":
		key := strings.TrimSpace(strings.Join(args, " "))
		return ma.newCommand(domain.CommandKey, text, map[string]any{ParamKey: key}), nil

	case "facets", "types", "genres":
		return ma.newCommand(domain.CommandFacets, text, nil), nil

	case "status":
		return ma.newCommand(domain.CommandStatus, text, nil), nil

	case "poster":
		out := strings.TrimSpace(strings.Join(args, " "))
		if out == "" {
			return nil, errors.NewValidationError("an output file is required", ParamOutput, "")
		}
		return ma.newCommand(domain.CommandPoster, text, map[string]any{ParamOutput: out}), nil

	case "help", "?":
		return ma.newCommand(domain.CommandHelp, text, nil), nil

	case "quit", "exit":
		return ma.newCommand(domain.CommandQuit, text, nil), nil
	}

	return ma.createUnknownCommand(text), nil
}

// parsePickArgs turns pick options into a FilterSpec. Positional words are
// appended to the keyword. Empty facets mean "Any".
func (ma *MessageAdapter) parsePickArgs(args []string) (domain.FilterSpec, error) {
	var opts pickOptions
	parser := goflags.NewParser(&opts, goflags.None)
	parser.Name = "pick"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return domain.FilterSpec{}, errors.NewValidationError(err.Error(), "pick", strings.Join(args, " "))
	}

	if err := validateYear("from", opts.From); err != nil {
		return domain.FilterSpec{}, err
	}
	if err := validateYear("to", opts.To); err != nil {
		return domain.FilterSpec{}, err
	}

	keyword := opts.Keyword
	if len(rest) > 0 {
		keyword = strings.TrimSpace(keyword + " " + strings.Join(rest, " "))
	}

	spec := domain.NewFilterSpec()
	spec.Type = facetOrAny(opts.Type)
	spec.Genre = facetOrAny(opts.Genre)
	spec.YearMin = opts.From
	spec.YearMax = opts.To
	return spec.WithKeyword(keyword), nil
}

func validateYear(field string, year int) error {
	if year < constants.YearBounds.Min || year > constants.YearBounds.Max {
		return errors.NewValidationError(
			fmt.Sprintf("year must be between %d and %d", constants.YearBounds.Min, constants.YearBounds.Max),
			field, year,
		)
	}
	return nil
}

func facetOrAny(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, constants.AnyFacet) {
		return constants.AnyFacet
	}
	return value
}

func (ma *MessageAdapter) newCommand(cmdType domain.CommandType, text string, params map[string]any) *ParsedCommand {
	if params == nil {
		params = make(map[string]any)
	}
	return &ParsedCommand{
		Type:       cmdType,
		Params:     params,
		RawMessage: text,
	}
}

func (ma *MessageAdapter) createUnknownCommand(text string) *ParsedCommand {
	return &ParsedCommand{
		Type:       domain.CommandUnknown,
		Params:     make(map[string]any),
		RawMessage: text,
	}
}
