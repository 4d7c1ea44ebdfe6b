package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/griffnb/core-raml/internal/console"
	"github.com/griffnb/core-raml/internal/gen"
	"github.com/griffnb/core-raml/internal/handler"
)

const (
	searchDirFlag        = "dir"
	excludeFlag          = "exclude"
	typesFlag            = "types"
	propertyStrategyFlag = "propertyStrategy"
	outputFlag           = "output"
	outputTypesFlag      = "outputTypes"
	parseVendorFlag      = "parseVendor"
	parseDependencyFlag  = "parseDependency"
	parseInternalFlag    = "parseInternal"
	parseDepthFlag       = "parseDepth"
	shallowFlag          = "shallow"
	instanceNameFlag     = "instanceName"
	packageNameFlag      = "packageName"
	packagePrefixFlag    = "packagePrefix"
	titleFlag            = "title"
	apiVersionFlag       = "apiVersion"
	baseURIFlag          = "baseUri"
	mediaTypeFlag        = "mediaType"
	strictFlag           = "strict"
	generatedTimeFlag    = "generatedTime"
	quietFlag            = "quiet"
	debugFlag            = "debug"
)

func env(name string) []string {
	return []string{"CORE_RAML_" + strings.ToUpper(name)}
}

var initFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
		EnvVars: env("QUIET"),
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories you want to parse, comma separated",
		EnvVars: env("DIR"),
	},
	&cli.StringFlag{
		Name:    excludeFlag,
		Usage:   "Exclude directories matching these globs, comma separated",
		EnvVars: env("EXCLUDE"),
	},
	&cli.StringFlag{
		Name:    typesFlag,
		Aliases: []string{"t"},
		Usage:   "Extra root types (Name, pkg.Name or import/path.Name), comma separated",
		EnvVars: env("TYPES"),
	},
	&cli.StringFlag{
		Name:    propertyStrategyFlag,
		Aliases: []string{"p"},
		Value:   handler.CamelCase,
		Usage:   "Property Naming Strategy like " + handler.SnakeCase + "," + handler.CamelCase + "," + handler.PascalCase,
		EnvVars: env("PROPERTY_STRATEGY"),
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for all the generated files (api.raml, swagger.json, swagger.yaml, docs.go)",
		EnvVars: env("OUTPUT"),
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "raml,json,yaml",
		Usage:   "Output types of generated files like raml,json,yaml,go",
		EnvVars: env("OUTPUT_TYPES"),
	},
	&cli.BoolFlag{
		Name:    parseVendorFlag,
		Usage:   "Parse go files in 'vendor' folder, disabled by default",
		EnvVars: env("PARSE_VENDOR"),
	},
	&cli.BoolFlag{
		Name:    parseDependencyFlag,
		Aliases: []string{"pd"},
		Usage:   "Parse packages imported by the search dirs, disabled by default",
		EnvVars: env("PARSE_DEPENDENCY"),
	},
	&cli.BoolFlag{
		Name:    parseInternalFlag,
		Usage:   "Parse internal dependency packages, disabled by default",
		EnvVars: env("PARSE_INTERNAL"),
	},
	&cli.IntFlag{
		Name:    parseDepthFlag,
		Value:   100,
		Usage:   "Dependency parse depth",
		EnvVars: env("PARSE_DEPTH"),
	},
	&cli.BoolFlag{
		Name:    shallowFlag,
		Usage:   "Parse only the search dirs, not the packages below them",
		EnvVars: env("SHALLOW"),
	},
	&cli.StringFlag{
		Name:    instanceNameFlag,
		Usage:   "This parameter can be used to name different document instances. It is optional.",
		EnvVars: env("INSTANCE_NAME"),
	},
	&cli.StringFlag{
		Name:    packageNameFlag,
		Usage:   "Package name of the generated docs.go, defaults to the output directory name",
		EnvVars: env("PACKAGE_NAME"),
	},
	&cli.StringFlag{
		Name:    packagePrefixFlag,
		Usage:   "Parse only packages whose import path match the given prefix, comma separated",
		EnvVars: env("PACKAGE_PREFIX"),
	},
	&cli.StringFlag{
		Name:    titleFlag,
		Usage:   "API title",
		EnvVars: env("TITLE"),
	},
	&cli.StringFlag{
		Name:    apiVersionFlag,
		Usage:   "API version",
		EnvVars: env("API_VERSION"),
	},
	&cli.StringFlag{
		Name:    baseURIFlag,
		Usage:   "API base URI",
		EnvVars: env("BASE_URI"),
	},
	&cli.StringFlag{
		Name:    mediaTypeFlag,
		Value:   handler.MediaJSON,
		Usage:   "Default body media type",
		EnvVars: env("MEDIA_TYPE"),
	},
	&cli.BoolFlag{
		Name:    strictFlag,
		Usage:   "Fail on the first type that cannot be built instead of skipping it",
		EnvVars: env("STRICT"),
	},
	&cli.BoolFlag{
		Name:    generatedTimeFlag,
		Usage:   "Write the generation time into docs.go",
		EnvVars: env("GENERATED_TIME"),
	},
	&cli.BoolFlag{
		Name:    debugFlag,
		Usage:   "Enable debug mode, disabled by default",
		EnvVars: env("DEBUG"),
	},
}

func initAction(ctx *cli.Context) error {
	strategy := ctx.String(propertyStrategyFlag)

	switch strategy {
	case handler.CamelCase, handler.SnakeCase, handler.PascalCase:
	default:
		return fmt.Errorf("not supported %s propertyStrategy", strategy)
	}

	if ctx.Bool(debugFlag) {
		console.Logger.DebugLevel = 1
	}
	console.Logger.SetQuiet(ctx.Bool(quietFlag))

	var outputTypes []string
	for _, outputType := range strings.Split(ctx.String(outputTypesFlag), ",") {
		if outputType = strings.TrimSpace(outputType); outputType != "" {
			outputTypes = append(outputTypes, outputType)
		}
	}
	if len(outputTypes) == 0 {
		return fmt.Errorf("no output types specified")
	}

	var debugger gen.Debugger = console.Logger
	if ctx.Bool(quietFlag) {
		debugger = log.New(io.Discard, "", log.LstdFlags)
	}

	return gen.New().Build(&gen.Config{
		SearchDir:          ctx.String(searchDirFlag),
		Excludes:           ctx.String(excludeFlag),
		Types:              ctx.String(typesFlag),
		PropNamingStrategy: strategy,
		OutputDir:          ctx.String(outputFlag),
		OutputTypes:        outputTypes,
		ParseVendor:        ctx.Bool(parseVendorFlag),
		ParseDependency:    ctx.Bool(parseDependencyFlag),
		ParseInternal:      ctx.Bool(parseInternalFlag),
		ParseDepth:         ctx.Int(parseDepthFlag),
		Shallow:            ctx.Bool(shallowFlag),
		InstanceName:       ctx.String(instanceNameFlag),
		PackageName:        ctx.String(packageNameFlag),
		PackagePrefix:      ctx.String(packagePrefixFlag),
		Title:              ctx.String(titleFlag),
		Version:            ctx.String(apiVersionFlag),
		BaseURI:            ctx.String(baseURIFlag),
		MediaType:          ctx.String(mediaTypeFlag),
		Strict:             ctx.Bool(strictFlag),
		GeneratedTime:      ctx.Bool(generatedTimeFlag),
		Debugger:           debugger,
	})
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("could not load .env: %v", err)
	}

	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Generate RAML 1.0 API documentation from annotated Go types."
	app.Commands = []*cli.Command{
		{
			Name:    "init",
			Aliases: []string{"i"},
			Usage:   "Generate RAML documentation",
			Action:  initAction,
			Flags:   initFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
