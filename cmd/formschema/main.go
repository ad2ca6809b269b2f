package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"

	fs "github.com/reoring/formschema"
	"github.com/reoring/formschema/internal/config"
	"github.com/reoring/formschema/internal/logging"
	"github.com/reoring/formschema/locales"
	"github.com/reoring/formschema/workshop"
)

var version = "dev"

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "validate":
		return validateCmd(ctx, args[1:], stdin, stdout, stderr)
	case "workshop-schema":
		return workshopSchemaCmd(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, "formschema", version)
		return exitValid
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "formschema CLI\n\nUsage:\n  formschema validate -schema schema.json [-format text|json] [-max-depth N] [-patterns patterns.yaml] data.json [data.yaml ...]\n  formschema workshop-schema [-languages en_US,de_DE]\n  formschema version\n\nNotes:\n  - Files are read as YAML when they end in .yaml or .yml, JSON otherwise. Use - for JSON on stdin.\n  - Exit status is 0 when every document is valid, 1 when one is not, 2 on usage or read errors.")
}

type fileResult struct {
	File   string    `json:"file"`
	Valid  bool      `json:"valid"`
	Issues fs.Issues `json:"issues,omitempty"`
	Error  string    `json:"error,omitempty"`
}

func validateCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		schemaPath   string
		format       string
		maxDepth     int
		patternsPath string
		allowDupKeys bool
		verbose      bool
	)
	flags.StringVar(&schemaPath, "schema", "", "schema file (.json, .yaml, .yml)")
	flags.StringVar(&format, "format", "text", "output format: text or json")
	flags.IntVar(&maxDepth, "max-depth", cfg.MaxDepth, "maximum nesting of data documents; negative disables the limit")
	flags.StringVar(&patternsPath, "patterns", cfg.PatternDescriptions, "YAML file mapping patterns to descriptions")
	flags.BoolVar(&allowDupKeys, "allow-duplicate-keys", false, "keep the last of repeated object keys")
	flags.BoolVar(&verbose, "v", false, "log each document at debug level")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if schemaPath == "" || flags.NArg() == 0 || (format != "text" && format != "json") {
		flags.Usage()
		return exitUsage
	}

	level, _ := cfg.Level()
	if verbose {
		level = zap.DebugLevel
	}
	log, err := logging.New(stderr, level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	schema, err := loadSchema(schemaPath)
	if err != nil {
		log.Error("cannot load schema", zap.String("file", schemaPath), zap.Error(err))
		return exitUsage
	}
	var opts []fs.Option
	if patternsPath != "" {
		data, err := os.ReadFile(patternsPath)
		if err != nil {
			log.Error("cannot read pattern descriptions", zap.Error(err))
			return exitUsage
		}
		descriptions, err := fs.LoadPatternDescriptions(data)
		if err != nil {
			log.Error("cannot load pattern descriptions", zap.String("file", patternsPath), zap.Error(err))
			return exitUsage
		}
		opts = append(opts, fs.WithPatternDescriber(descriptions))
	}
	v := fs.New(schema, opts...)
	srcOpt := fs.SourceOpt{MaxDepth: maxDepth, AllowDuplicateKeys: allowDupKeys}

	code := exitValid
	results := make([]fileResult, 0, flags.NArg())
	for _, name := range flags.Args() {
		res := fileResult{File: name}
		src, err := openSource(name, stdin, srcOpt)
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			log.Error("cannot read data", zap.String("file", name), zap.Error(err))
			code = exitUsage
			continue
		}
		_, err = v.ValidateFrom(ctx, src)
		switch iss, ok := fs.AsIssues(err); {
		case err == nil:
			res.Valid = true
		case ok:
			res.Issues = iss
			if code == exitValid {
				code = exitInvalid
			}
		default:
			res.Error = err.Error()
			code = exitUsage
		}
		log.Debug("validated", zap.String("file", name), zap.Bool("valid", res.Valid), zap.Int("issues", len(res.Issues)))
		results = append(results, res)
	}

	if err := writeResults(stdout, format, results); err != nil {
		log.Error("cannot write results", zap.Error(err))
		return exitUsage
	}
	return code
}

func loadSchema(path string) (*fs.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		return fs.ParseSchemaYAML(data)
	}
	return fs.ParseSchemaJSON(data)
}

func openSource(name string, stdin io.Reader, opt fs.SourceOpt) (fs.Source, error) {
	if name == "-" {
		return fs.JSONReader(stdin, opt), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if isYAML(name) {
		return fs.YAMLBytes(data, opt), nil
	}
	return fs.JSONBytes(data, opt), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func writeResults(w io.Writer, format string, results []fileResult) error {
	if format == "json" {
		out, err := gojson.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
	for _, r := range results {
		var err error
		switch {
		case r.Error != "":
			_, err = fmt.Fprintf(w, "%s: error: %s\n", r.File, r.Error)
		case r.Valid:
			_, err = fmt.Fprintf(w, "%s: valid\n", r.File)
		default:
			_, err = fmt.Fprintf(w, "%s: invalid\n", r.File)
			for _, it := range r.Issues {
				if err != nil {
					break
				}
				_, err = fmt.Fprintf(w, "  %s: %s (%s)\n", displayPath(it.Path), it.Message, it.Code)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func displayPath(p string) string {
	if p == "" {
		return "(schema)"
	}
	return p
}

func workshopSchemaCmd(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("workshop-schema", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var languagesCSV string
	flags.StringVar(&languagesCSV, "languages", "", "comma-separated locale codes; default is the built-in list")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	codes := locales.Default().Codes()
	if languagesCSV != "" {
		set, err := locales.New(splitCSV(languagesCSV)...)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		codes = set.Codes()
	}

	out, err := gojson.MarshalIndent(workshop.NewSchema(codes), "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	fmt.Fprintln(stdout, string(out))
	return exitValid
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
