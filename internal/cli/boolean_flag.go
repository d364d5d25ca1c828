package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue accepts yes/no style literals in addition to strconv booleans.
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func parseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, known := booleanFlagLiterals[normalized]
	return parsed, known
}

func (value *booleanFlagValue) Set(input string) error {
	parsed, known := parseBooleanLiteral(input)
	if !known {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag adds a flag that may be given bare (--copy), with an
// equals sign (--copy=no) or followed by a literal (--copy no).
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagKey: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = booleanFlagTrueLiteral
}

// normalizeBooleanFlagArguments joins "--flag literal" pairs into "--flag=literal"
// for every boolean flag of command and its subcommands.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			return append(normalized, arguments[index:]...)
		}
		flagName, isLongFlag := strings.CutPrefix(currentArgument, "--")
		_, isBooleanFlag := booleanFlags[flagName]
		if isLongFlag && isBooleanFlag && index+1 < len(arguments) {
			if _, known := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(arguments[index+1]))]; known {
				normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, arguments[index+1]))
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	collect := func(flag *pflag.Flag) {
		if flag.Value.Type() == booleanFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
