package gen

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/spec"
	"github.com/goccy/go-json"
	"github.com/griffnb/core-raml/internal/console"
	"github.com/griffnb/core-raml/internal/emitter"
	"github.com/griffnb/core-raml/internal/orchestrator"
	"github.com/griffnb/core-raml/internal/schema"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"sigs.k8s.io/yaml"
)

// Version of the generator.
const Version = "v0.1.0"

// DefaultInstanceName is the instance whose output files carry no prefix.
const DefaultInstanceName = "raml"

// output is everything a writer may need; it is read-only once built.
type output struct {
	doc     *emitter.Document
	raml    []byte
	swagger *spec.Swagger
}

type genTypeWriter func(*Config, *output) error

// Gen presents a generate tool for RAML documents.
type Gen struct {
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		debug:      console.Logger,
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"raml": gen.writeRAML,
		"go":   gen.writeGoDoc,
		"json": gen.writeJSONSwagger,
		"yaml": gen.writeYAMLSwagger,
	}

	return &gen
}

// Config presents Gen configurations.
type Config struct {
	Debugger Debugger

	// SearchDir the generator would parse, comma separated if multiple
	SearchDir string

	// Excludes dirs matched by these globs, comma separated
	Excludes string

	// PackagePrefix parse only packages whose import path match, comma separated
	PackagePrefix string

	// Types names extra root types, comma separated
	Types string

	// OutputDir represents the output directory for all the generated files
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// InstanceName is used to get distinct names for different documents in the
	// same project. The default value is "raml".
	InstanceName string

	// PackageName defines package name of generated `docs.go`
	PackageName string

	Title     string
	Version   string
	BaseURI   string
	MediaType string

	// PropNamingStrategy represents property naming strategy like snake case,camel case,pascal case
	PropNamingStrategy string

	// ParseDepth dependency parse depth
	ParseDepth int

	// ParseVendor whether vendor folders are parsed
	ParseVendor bool

	// ParseDependency whether packages the search dirs import are parsed
	ParseDependency bool

	// ParseInternal whether internal packages are parsed
	ParseInternal bool

	// Shallow parses only the search dirs, not their subpackages
	Shallow bool

	// Strict fails on the first root type that cannot be built
	Strict bool

	// GeneratedTime whether the timestamp is written at the top of docs.go
	GeneratedTime bool
}

// Build parses the search dirs and writes every requested output type.
func (g *Gen) Build(config *Config) error {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}
	if config.InstanceName == "" {
		config.InstanceName = DefaultInstanceName
	}

	searchDirs := parseList(config.SearchDir)
	for _, searchDir := range searchDirs {
		if _, err := os.Stat(searchDir); os.IsNotExist(err) {
			return fmt.Errorf("dir: %s does not exist", searchDir)
		}
	}

	console.Logger.Debug("Generate RAML docs....")

	orc := orchestrator.New(&orchestrator.Config{
		ParseVendor:        config.ParseVendor,
		ParseInternal:      config.ParseInternal,
		ParseDependency:    config.ParseDependency,
		ParseDepth:         config.ParseDepth,
		Shallow:            config.Shallow,
		Excludes:           parseList(config.Excludes),
		PackagePrefix:      parseList(config.PackagePrefix),
		Types:              parseList(config.Types),
		Title:              config.Title,
		Version:            config.Version,
		BaseURI:            config.BaseURI,
		MediaType:          config.MediaType,
		PropNamingStrategy: config.PropNamingStrategy,
		Strict:             config.Strict,
		Debug:              g.debug,
	})

	doc, err := orc.Parse(searchDirs)
	if err != nil {
		return err
	}

	out := &output{doc: doc}
	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return err
	}
	out.raml = buf.Bytes()

	out.swagger, err = schema.Swagger(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return err
	}

	var eg errgroup.Group
	seen := make(map[string]bool)
	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		if outputType == "yml" {
			outputType = "yaml"
		}
		typeWriter, ok := g.outputTypeMap[outputType]
		if !ok {
			console.Logger.Warn("output type '%s' not supported", outputType)
			continue
		}
		if seen[outputType] {
			continue
		}
		seen[outputType] = true

		eg.Go(func() error {
			return typeWriter(config, out)
		})
	}

	return eg.Wait()
}

func fileName(config *Config, name string) string {
	if config.InstanceName != DefaultInstanceName {
		name = config.InstanceName + "_" + name
	}
	return path.Join(config.OutputDir, name)
}

func (g *Gen) writeRAML(config *Config, out *output) error {
	ramlFileName := fileName(config, "api.raml")
	if err := g.writeFile(out.raml, ramlFileName); err != nil {
		return err
	}

	console.Logger.Debug("create api.raml at %+v", ramlFileName)
	return nil
}

func (g *Gen) writeJSONSwagger(config *Config, out *output) error {
	jsonFileName := fileName(config, "swagger.json")

	b, err := g.jsonIndent(out.swagger)
	if err != nil {
		return err
	}

	if err := g.writeFile(b, jsonFileName); err != nil {
		return err
	}

	console.Logger.Debug("create swagger.json at %+v", jsonFileName)
	return nil
}

func (g *Gen) writeYAMLSwagger(config *Config, out *output) error {
	yamlFileName := fileName(config, "swagger.yaml")

	b, err := g.jsonIndent(out.swagger)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot covert json to yaml error: %s", err)
	}

	if err := g.writeFile(y, yamlFileName); err != nil {
		return err
	}

	console.Logger.Debug("create swagger.yaml at %+v", yamlFileName)
	return nil
}

func (g *Gen) writeGoDoc(config *Config, out *output) error {
	docFileName := fileName(config, "docs.go")

	packageName := config.PackageName
	if packageName == "" {
		absOutputDir, err := filepath.Abs(config.OutputDir)
		if err != nil {
			return err
		}
		packageName = strings.ReplaceAll(filepath.Base(absOutputDir), "-", "_")
	}

	swaggerJSON, err := g.jsonIndent(out.swagger)
	if err != nil {
		return err
	}

	suffix := instanceSuffix(config.InstanceName)
	generated := "Code generated by core-raml. DO NOT EDIT."
	if config.GeneratedTime {
		generated = fmt.Sprintf("Code generated by core-raml at %s. DO NOT EDIT.", time.Now().Format(time.RFC3339))
	}

	f := jen.NewFile(packageName)
	f.HeaderComment(generated)
	f.PackageComment(fmt.Sprintf("Package %s holds the generated API documents.", packageName))

	f.Commentf("RAMLDoc%s is the RAML 1.0 document of %s.", suffix, out.doc.Title)
	f.Const().Id("RAMLDoc" + suffix).Op("=").Lit(string(out.raml))
	f.Line()
	f.Commentf("SwaggerDoc%s is the Swagger 2.0 view of the same API.", suffix)
	f.Const().Id("SwaggerDoc" + suffix).Op("=").Lit(string(swaggerJSON))

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return err
	}
	if err := g.writeFile(buf.Bytes(), docFileName); err != nil {
		return err
	}

	console.Logger.Debug("create docs.go at %+v", docFileName)
	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(b)
	return err
}

// instanceSuffix turns a non-default instance name into an identifier suffix.
func instanceSuffix(instance string) string {
	if instance == DefaultInstanceName {
		return ""
	}
	words := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(strings.ToLower(instance))
	return strings.ReplaceAll(cases.Title(language.English).String(words), " ", "")
}

// parseList converts a comma-separated string to a slice, dropping blanks.
func parseList(list string) []string {
	if list == "" {
		return nil
	}

	var result []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
